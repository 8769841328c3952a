package entity

import "time"

// Supplier representa un proveedor de materias primas.
type Supplier struct {
	ID        string
	Code      string // código único legible (SUP-001)
	Name      string
	Contact   string
	Phone     string
	Address   string
	Status    string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
