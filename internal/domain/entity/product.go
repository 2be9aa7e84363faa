package entity

import "time"

// UnitMeasure representa una unidad de medida (kg, un, lt...).
type UnitMeasure struct {
	ID        string
	Name      string
	Symbol    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Brand representa una marca del catálogo global. El nombre es único; la
// marca no puede eliminarse mientras algún producto la referencie.
type Brand struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product representa un producto del catálogo. Las existencias se llevan
// por bodega en Stock; el producto no guarda cantidades. La marca es
// opcional.
type Product struct {
	ID            string
	CompanyID     string
	Name          string
	UnitMeasureID string
	BrandID       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
