package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	pool *pgxpool.Pool
}

// NewBrandRepository construye el adaptador para marcas.
func NewBrandRepository(pool *pgxpool.Pool) *BrandRepo {
	return &BrandRepo{pool: pool}
}

// Create persiste una marca. ErrDuplicate si el nombre ya existe.
func (r *BrandRepo) Create(brand *entity.Brand) error {
	query := `
		INSERT INTO brands (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(context.Background(), query,
		brand.ID, brand.Name, brand.CreatedAt, brand.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetByID obtiene una marca por ID.
func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM brands WHERE id = $1`
	var b entity.Brand
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// Update renombra una marca. ErrDuplicate si el nuevo nombre ya existe.
func (r *BrandRepo) Update(brand *entity.Brand) error {
	query := `
		UPDATE brands SET name = $2, updated_at = $3
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		brand.ID, brand.Name, brand.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update brand: %w", err)
	}
	return nil
}

// List lista todas las marcas ordenadas por nombre.
func (r *BrandRepo) List() ([]*entity.Brand, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM brands ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete elimina una marca. ErrConflict si algún producto la referencia.
func (r *BrandRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete brand: %w", err)
	}
	return nil
}
