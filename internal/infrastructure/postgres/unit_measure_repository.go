package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.UnitMeasureRepository = (*UnitMeasureRepo)(nil)

// UnitMeasureRepo implementación del puerto UnitMeasureRepository sobre PostgreSQL.
type UnitMeasureRepo struct {
	pool *pgxpool.Pool
}

// NewUnitMeasureRepository construye el adaptador para unidades de medida.
func NewUnitMeasureRepository(pool *pgxpool.Pool) *UnitMeasureRepo {
	return &UnitMeasureRepo{pool: pool}
}

// Create persiste una unidad de medida.
func (r *UnitMeasureRepo) Create(unit *entity.UnitMeasure) error {
	query := `
		INSERT INTO unit_measures (id, name, symbol, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.Symbol, unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit measure: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad de medida por ID.
func (r *UnitMeasureRepo) GetByID(id string) (*entity.UnitMeasure, error) {
	query := `
		SELECT id, name, symbol, created_at, updated_at
		FROM unit_measures WHERE id = $1`
	var u entity.UnitMeasure
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Name, &u.Symbol, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit measure: %w", err)
	}
	return &u, nil
}

// List lista todas las unidades de medida ordenadas por nombre.
func (r *UnitMeasureRepo) List() ([]*entity.UnitMeasure, error) {
	query := `
		SELECT id, name, symbol, created_at, updated_at
		FROM unit_measures ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list unit measures: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnitMeasure
	for rows.Next() {
		var u entity.UnitMeasure
		if err := rows.Scan(&u.ID, &u.Name, &u.Symbol, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit measure: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
