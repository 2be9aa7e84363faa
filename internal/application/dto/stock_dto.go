package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest body para POST /api/stocks. La cantidad inicial genera
// el movimiento génesis (entrada) del registro.
type CreateStockRequest struct {
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid4"`
	ProductID   string          `json:"product_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
}

// UpdateStockRequest body para PATCH /api/stocks/:id. Solo el precio es
// editable; la cantidad se muta únicamente registrando movimientos.
type UpdateStockRequest struct {
	Price decimal.Decimal `json:"price" validate:"required"`
}

// StockResponse salida de un registro de stock.
type StockResponse struct {
	ID          string          `json:"id"`
	WarehouseID string          `json:"warehouse_id"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockDetailResponse stock con su historial de movimientos (más recientes primero).
type StockDetailResponse struct {
	StockResponse
	Movements []MovementResponse `json:"movements"`
}

// StockListResponse lista paginada de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
