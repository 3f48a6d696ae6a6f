package models

import domain "github.com/mohammadpnp/bizimport/internal/domain/importing"

// ForTable returns an empty model of the business table.
func ForTable(table domain.TableName) (any, bool) {
	switch table {
	case domain.TableCustomers:
		return &Customer{}, true
	case domain.TableProfessionals:
		return &Professional{}, true
	case domain.TableServices:
		return &Service{}, true
	case domain.TableAppointments:
		return &Appointment{}, true
	case domain.TablePayments:
		return &Payment{}, true
	case domain.TableMarketingChannels:
		return &MarketingChannel{}, true
	default:
		return nil, false
	}
}

// All lists every model managed by migrations.
func All() []any {
	return []any{
		&MarketingChannel{},
		&Customer{},
		&Professional{},
		&Service{},
		&Appointment{},
		&Payment{},
		&ImportRun{},
	}
}
