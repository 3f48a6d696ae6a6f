package repository_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
	"github.com/mohammadpnp/bizimport/internal/infrastructure/db/models"
	"github.com/mohammadpnp/bizimport/internal/infrastructure/repository"
	"gorm.io/gorm/schema"
)

func TestSchemaCatalogCustomers(t *testing.T) {
	t.Parallel()

	catalog := repository.NewSchemaCatalog(nil)

	got, err := catalog.Schema(context.Background(), domain.TableCustomers)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wantColumns := []string{"full_name", "email", "phone", "birth_date", "document", "address", "city", "notes", "marketing_channel_id"}
	if !reflect.DeepEqual(got.Columns, wantColumns) {
		t.Fatalf("expected columns %v, got %v", wantColumns, got.Columns)
	}
	if !reflect.DeepEqual(got.Required, []string{"full_name"}) {
		t.Fatalf("unexpected required columns: %v", got.Required)
	}
}

func TestSchemaCatalogRequiredSkipsDefaults(t *testing.T) {
	t.Parallel()

	catalog := repository.NewSchemaCatalog(nil)

	cases := map[domain.TableName][]string{
		domain.TableServices:          {"name", "price"},
		domain.TableAppointments:      {"customer_id", "appointment_date"},
		domain.TablePayments:          {"amount", "payment_date"},
		domain.TableProfessionals:     {"full_name"},
		domain.TableMarketingChannels: {"name"},
	}
	for table, want := range cases {
		got, err := catalog.Schema(context.Background(), table)
		if err != nil {
			t.Fatalf("%s: %v", table, err)
		}
		if !reflect.DeepEqual(got.Required, want) {
			t.Fatalf("%s: expected required %v, got %v", table, want, got.Required)
		}
		for _, column := range got.Columns {
			if column == "id" || column == "created_at" || column == "updated_at" {
				t.Fatalf("%s: unexpected column %s", table, column)
			}
		}
	}
}

func TestSchemaCatalogUnknownTable(t *testing.T) {
	t.Parallel()

	_, err := repository.NewSchemaCatalog(nil).Schema(context.Background(), domain.TableName("users"))
	if !errors.Is(err, domain.ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
}

func TestBusinessTablesDefaultTheirTimestamps(t *testing.T) {
	t.Parallel()

	for _, table := range domain.Tables() {
		model, ok := models.ForTable(table)
		if !ok {
			t.Fatalf("%s: no model", table)
		}
		parsed, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("%s: parse: %v", table, err)
		}
		for _, column := range []string{"created_at", "updated_at"} {
			field := parsed.LookUpField(column)
			if field == nil || !field.HasDefaultValue || field.DefaultValue != "CURRENT_TIMESTAMP" {
				t.Fatalf("%s.%s: expected a database default so bulk inserts are stamped", table, column)
			}
		}
	}
}
