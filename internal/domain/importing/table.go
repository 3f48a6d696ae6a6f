package importing

import "strings"

// TableName identifies a business table that accepts imports and exports.
type TableName string

const (
	TableCustomers         TableName = "customers"
	TableProfessionals     TableName = "professionals"
	TableServices          TableName = "services"
	TableAppointments      TableName = "appointments"
	TablePayments          TableName = "payments"
	TableMarketingChannels TableName = "marketing_channels"
)

var knownTables = []TableName{
	TableCustomers,
	TableProfessionals,
	TableServices,
	TableAppointments,
	TablePayments,
	TableMarketingChannels,
}

// Tables returns every table that can be imported into, in a stable order.
func Tables() []TableName {
	out := make([]TableName, len(knownTables))
	copy(out, knownTables)
	return out
}

// ParseTableName validates a table name coming from user input or configuration.
func ParseTableName(raw string) (TableName, error) {
	name := TableName(strings.ToLower(strings.TrimSpace(raw)))
	for _, table := range knownTables {
		if table == name {
			return table, nil
		}
	}
	return "", ErrUnknownTable
}

func (t TableName) String() string {
	return string(t)
}

// TableSchema describes the importable columns of a table.
type TableSchema struct {
	Table    TableName
	Columns  []string
	Required []string
}

func (s TableSchema) HasColumn(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}
