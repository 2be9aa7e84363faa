package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia de un producto en una bodega.
// Quantity es un valor derivado: siempre igual a sum(entradas) - sum(salidas)
// de sus movimientos. Nunca se edita directamente; solo el recálculo del
// motor de stock la escribe.
type Stock struct {
	ID          string
	WarehouseID string
	ProductID   string
	Quantity    decimal.Decimal // NUMERIC(14,3), derivada de movimientos
	Price       decimal.Decimal // NUMERIC(14,2), precio unitario vigente
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
