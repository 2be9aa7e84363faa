package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant).
type Company struct {
	ID        string
	Name      string
	TaxID     string // identificación tributaria (NIT/CNPJ)
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
