package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stocks/:id/movements.
// unit_price es obligatorio en entradas (type=IN).
type RegisterMovementRequest struct {
	Type      string           `json:"type" validate:"required,oneof=IN OUT"`
	Quantity  decimal.Decimal  `json:"quantity" validate:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID            string           `json:"id"`
	StockID       string           `json:"stock_id"`
	ResponsibleID *string          `json:"responsible_id,omitempty"`
	Type          string           `json:"type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}
