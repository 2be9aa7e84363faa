package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create persiste un nuevo registro de stock.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (id, warehouse_id, product_id, quantity, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.WarehouseID, stock.ProductID, stock.Quantity,
		stock.Price, stock.Active, stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByID obtiene un stock por ID.
func (r *StockRepo) GetByID(id string) (*entity.Stock, error) {
	query := `
		SELECT id, warehouse_id, product_id, quantity, price, active, created_at, updated_at
		FROM stocks WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
// Solo útil sobre un repositorio atado a una transacción.
func (r *StockRepo) GetForUpdate(id string) (*entity.Stock, error) {
	query := `
		SELECT id, warehouse_id, product_id, quantity, price, active, created_at, updated_at
		FROM stocks WHERE id = $1
		FOR UPDATE`
	return r.scanOne(query, id)
}

// UpdateQuantity escribe la cantidad recalculada por el motor de stock.
func (r *StockRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	query := `UPDATE stocks SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	return nil
}

// UpdatePrice edita el precio unitario (único campo editable directamente).
func (r *StockRepo) UpdatePrice(id string, price decimal.Decimal) error {
	query := `UPDATE stocks SET price = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, price)
	if err != nil {
		return fmt.Errorf("update stock price: %w", err)
	}
	return nil
}

// Delete elimina un stock. La FK de movements protege la fila: si aún hay
// movimientos, la violación 23503 se traduce a ErrStockInUse.
func (r *StockRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stocks WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrStockInUse
		}
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}

// List lista stock filtrado por empresa (vía bodega) y opcionalmente por
// bodega y producto.
func (r *StockRepo) List(filter repository.StockFilter, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT s.id, s.warehouse_id, s.product_id, s.quantity, s.price, s.active, s.created_at, s.updated_at
		FROM stocks s
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE w.company_id = $1`
	args := []any{filter.CompanyID}
	pos := 2
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND s.warehouse_id = $%d", pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND s.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.WarehouseID, &s.ProductID, &s.Quantity,
			&s.Price, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *StockRepo) scanOne(query string, args ...any) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.WarehouseID, &s.ProductID, &s.Quantity,
		&s.Price, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}
