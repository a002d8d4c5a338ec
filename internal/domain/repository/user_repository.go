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

type UserRepository interface {
	Create(ctx context.Context, tx *sql.Tx, user *model.User) error
	Update(ctx context.Context, tx *sql.Tx, targetEmail string, user *model.User) error
	Delete(ctx context.Context, tx *sql.Tx, email string) error
	FindByEmail(ctx context.Context, tx *sql.Tx, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, tx *sql.Tx, user *model.User) error {
	query := `INSERT INTO users (id, full_name, email, password_hash, phone, role)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at, updated_at`

	row := r.queryRow(ctx, tx, query, user.ID, user.FullName, user.Email, user.PasswordHash, user.Phone, user.Role)
	if err := row.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint on email
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) Update(ctx context.Context, tx *sql.Tx, targetEmail string, user *model.User) error {
	query := `UPDATE users
	          SET full_name = $1, email = $2, password_hash = $3, phone = $4, updated_at = CURRENT_TIMESTAMP
	          WHERE email = $5
	          RETURNING id, role, created_at, updated_at`

	row := r.queryRow(ctx, tx, query, user.FullName, user.Email, user.PasswordHash, user.Phone, targetEmail)
	if err := row.Scan(&user.ID, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Update: %w", err)
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, tx *sql.Tx, email string) error {
	query := `DELETE FROM users WHERE email = $1`

	var (
		res sql.Result
		err error
	)
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, email)
	} else {
		res, err = r.db.ExecContext(ctx, query, email)
	}
	if err != nil {
		return fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, tx *sql.Tx, email string) (*model.User, error) {
	query := `SELECT id, full_name, email, password_hash, phone, role, created_at, updated_at
	          FROM users WHERE email = $1`

	user := &model.User{}
	err := r.queryRow(ctx, tx, query, email).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Phone, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, full_name, email, password_hash, phone, role, created_at, updated_at
	          FROM users ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Phone, &user.Role, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgUserRepository.List: scan: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *pgUserRepository) queryRow(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) *sql.Row {
	if tx != nil {
		return tx.QueryRowContext(ctx, query, args...)
	}
	return r.db.QueryRowContext(ctx, query, args...)
}
