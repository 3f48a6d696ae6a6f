package repository

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
	"github.com/mohammadpnp/bizimport/internal/infrastructure/db/models"
	"gorm.io/gorm/schema"
)

// SchemaCatalog derives importable columns from the gorm models. Primary keys
// and automatic timestamps are left out; a column is required when it is NOT
// NULL without a default.
type SchemaCatalog struct {
	namer schema.Namer
	cache *sync.Map
}

func NewSchemaCatalog(namer schema.Namer) *SchemaCatalog {
	if namer == nil {
		namer = schema.NamingStrategy{}
	}
	return &SchemaCatalog{namer: namer, cache: &sync.Map{}}
}

func (c *SchemaCatalog) Schema(ctx context.Context, table domain.TableName) (domain.TableSchema, error) {
	model, ok := models.ForTable(table)
	if !ok {
		return domain.TableSchema{}, domain.ErrUnknownTable
	}

	parsed, err := schema.Parse(model, c.cache, c.namer)
	if err != nil {
		return domain.TableSchema{}, fmt.Errorf("parse %s model: %w", table, err)
	}

	out := domain.TableSchema{Table: table}
	for _, field := range parsed.Fields {
		if field.DBName == "" || field.PrimaryKey {
			continue
		}
		if field.AutoCreateTime > 0 || field.AutoUpdateTime > 0 {
			continue
		}
		out.Columns = append(out.Columns, field.DBName)
		if field.NotNull && !field.HasDefaultValue {
			out.Required = append(out.Required, field.DBName)
		}
	}

	return out, nil
}
