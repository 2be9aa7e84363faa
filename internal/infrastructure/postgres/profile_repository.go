package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepository construye el adaptador de persistencia para perfiles.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// Create persiste un nuevo perfil.
func (r *ProfileRepo) Create(profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, company_id, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		profile.ID, profile.UserID, profile.CompanyID, profile.Role,
		profile.Active, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByUserAndCompany obtiene el perfil de un usuario en una empresa.
// Resuelve el responsable de un movimiento de stock.
func (r *ProfileRepo) GetByUserAndCompany(userID, companyID string) (*entity.Profile, error) {
	query := `
		SELECT id, user_id, company_id, role, active, created_at, updated_at
		FROM profiles WHERE user_id = $1 AND company_id = $2`
	var p entity.Profile
	err := r.pool.QueryRow(context.Background(), query, userID, companyID).Scan(
		&p.ID, &p.UserID, &p.CompanyID, &p.Role, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// ListByUser lista los perfiles de un usuario.
func (r *ProfileRepo) ListByUser(userID string) ([]*entity.Profile, error) {
	query := `
		SELECT id, user_id, company_id, role, active, created_at, updated_at
		FROM profiles WHERE user_id = $1 ORDER BY created_at`
	return r.scanList(query, userID)
}

// ListByCompany lista perfiles por empresa con paginación.
func (r *ProfileRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Profile, error) {
	query := `
		SELECT id, user_id, company_id, role, active, created_at, updated_at
		FROM profiles WHERE company_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	return r.scanList(query, companyID, limit, offset)
}

func (r *ProfileRepo) scanList(query string, args ...any) ([]*entity.Profile, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.CompanyID, &p.Role, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
