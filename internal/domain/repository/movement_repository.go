package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de stock.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	Delete(id string) error
	// SumByType devuelve la suma de cantidades de entradas y salidas del stock.
	// Ambas en cero cuando no hay movimientos.
	SumByType(stockID string) (totalIn, totalOut decimal.Decimal, err error)
	CountByStock(stockID string) (int64, error)
	ListByStock(stockID string, limit, offset int) ([]*entity.Movement, error)
}
