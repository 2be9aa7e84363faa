package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Movement representa un movimiento de stock (entrada o salida).
// Los movimientos son el registro autoritativo: la cantidad del Stock se
// recalcula a partir de ellos en cada alta o baja. Nunca se actualizan;
// pueden eliminarse, lo que dispara un nuevo recálculo.
type Movement struct {
	ID            string
	StockID       string
	ResponsibleID *string // perfil que registró el movimiento; nil si no se resolvió
	Type          string  // IN | OUT
	Quantity      decimal.Decimal  // NUMERIC(14,3), estrictamente positiva
	UnitPrice     *decimal.Decimal // NUMERIC(14,2), obligatorio en entradas
	CreatedAt     time.Time
}
