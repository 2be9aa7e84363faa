package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockFilter filtros opcionales para listar stock. Strings vacíos = sin filtro.
type StockFilter struct {
	CompanyID   string
	WarehouseID string
	ProductID   string
}

// StockRepository define el puerto de persistencia para Stock (DIP).
// Usado dentro de transacciones para garantizar consistencia del motor.
type StockRepository interface {
	Create(stock *entity.Stock) error
	GetByID(id string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Solo tiene
	// sentido sobre un repositorio atado a una transacción.
	GetForUpdate(id string) (*entity.Stock, error)
	// UpdateQuantity escribe la cantidad recalculada. Es la única vía de
	// mutación de Quantity.
	UpdateQuantity(id string, quantity decimal.Decimal) error
	UpdatePrice(id string, price decimal.Decimal) error
	Delete(id string) error
	List(filter StockFilter, limit, offset int) ([]*entity.Stock, error)
}
