package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotel_hub/internal/common"
	"hotel_hub/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ServiceRepository interface {
	Create(ctx context.Context, tx *sql.Tx, svc *model.Service) error
	Update(ctx context.Context, tx *sql.Tx, targetID int64, svc *model.Service) error
	Delete(ctx context.Context, tx *sql.Tx, id int64) error
	FindByID(ctx context.Context, tx *sql.Tx, id int64) (*model.Service, error)
	List(ctx context.Context) ([]model.Service, error)
}

type pgServiceRepository struct {
	db *sql.DB
}

func NewPgServiceRepository(db *sql.DB) ServiceRepository {
	return &pgServiceRepository{db: db}
}

func (r *pgServiceRepository) Create(ctx context.Context, tx *sql.Tx, svc *model.Service) error {
	query := `INSERT INTO services (name, slug, category, price, description)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`

	row := r.queryRow(ctx, tx, query, svc.Name, svc.Slug, svc.Category, svc.Price, svc.Description)
	if err := row.Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint on name or slug
			return fmt.Errorf("service with given name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgServiceRepository.Create: %w", err)
	}
	return nil
}

func (r *pgServiceRepository) Update(ctx context.Context, tx *sql.Tx, targetID int64, svc *model.Service) error {
	query := `UPDATE services
	          SET name = $1, slug = $2, category = $3, price = $4, description = $5, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6
	          RETURNING id, created_at, updated_at`

	row := r.queryRow(ctx, tx, query, svc.Name, svc.Slug, svc.Category, svc.Price, svc.Description, targetID)
	if err := row.Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("service with given name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgServiceRepository.Update: %w", err)
	}
	return nil
}

func (r *pgServiceRepository) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	query := `DELETE FROM services WHERE id = $1`

	var (
		res sql.Result
		err error
	)
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, id)
	} else {
		res, err = r.db.ExecContext(ctx, query, id)
	}
	if err != nil {
		return fmt.Errorf("pgServiceRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgServiceRepository) FindByID(ctx context.Context, tx *sql.Tx, id int64) (*model.Service, error) {
	query := `SELECT id, name, slug, category, price, description, created_at, updated_at
	          FROM services WHERE id = $1`

	svc := &model.Service{}
	err := r.queryRow(ctx, tx, query, id).Scan(
		&svc.ID, &svc.Name, &svc.Slug, &svc.Category, &svc.Price, &svc.Description, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgServiceRepository.FindByID: %w", err)
	}
	return svc, nil
}

func (r *pgServiceRepository) List(ctx context.Context) ([]model.Service, error) {
	query := `SELECT id, name, slug, category, price, description, created_at, updated_at
	          FROM services ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgServiceRepository.List: %w", err)
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		var svc model.Service
		if err := rows.Scan(
			&svc.ID, &svc.Name, &svc.Slug, &svc.Category, &svc.Price, &svc.Description, &svc.CreatedAt, &svc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgServiceRepository.List: scan: %w", err)
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (r *pgServiceRepository) queryRow(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) *sql.Row {
	if tx != nil {
		return tx.QueryRowContext(ctx, query, args...)
	}
	return r.db.QueryRowContext(ctx, query, args...)
}
