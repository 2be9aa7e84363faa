package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, stock_id, responsible_id, type, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.StockID, movement.ResponsibleID,
		movement.Type, movement.Quantity, movement.UnitPrice, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `
		SELECT id, stock_id, responsible_id, type, quantity, unit_price, created_at
		FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.StockID, &m.ResponsibleID, &m.Type, &m.Quantity, &m.UnitPrice, &m.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// Delete elimina un movimiento. Sin protección referencial: cualquier
// movimiento puede eliminarse.
func (r *MovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// SumByType agrega las cantidades de entradas y salidas del stock en una
// sola consulta. Cero cuando no hay movimientos.
func (r *MovementRepo) SumByType(stockID string) (totalIn, totalOut decimal.Decimal, err error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE type = 'IN'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE type = 'OUT'), 0)
		FROM movements WHERE stock_id = $1`
	err = r.q.QueryRow(context.Background(), query, stockID).Scan(&totalIn, &totalOut)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return totalIn, totalOut, nil
}

// CountByStock cuenta los movimientos que referencian un stock.
func (r *MovementRepo) CountByStock(stockID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM movements WHERE stock_id = $1`, stockID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

// ListByStock lista los movimientos de un stock, más recientes primero.
func (r *MovementRepo) ListByStock(stockID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, stock_id, responsible_id, type, quantity, unit_price, created_at
		FROM movements WHERE stock_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, stockID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.StockID, &m.ResponsibleID, &m.Type,
			&m.Quantity, &m.UnitPrice, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
