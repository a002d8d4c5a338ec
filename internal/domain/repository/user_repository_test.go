package repository_test

import (
	"context"
	"net/http"
	"testing"

	"hotel_hub/internal/common"
	"hotel_hub/internal/domain/model"
	"hotel_hub/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateUniqueViolationIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPgUserRepository(db)

	// Two concurrent registrations can both pass the existence check; the
	// schema constraint catches the loser.
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err = repo.Create(context.Background(), nil, &model.User{
		ID:           "d2c7a9e0-0000-4000-8000-000000000003",
		FullName:     "Ada Lovelace",
		Email:        "ada@x.com",
		PasswordHash: "$2a$10$aaaaaaaaaaaaaaaaaaaaaa",
		Phone:        "0811111111",
		Role:         model.RoleUser,
	})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, http.StatusConflict, common.HTTPStatusFromError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateUniqueViolationIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPgUserRepository(db)

	mock.ExpectQuery("UPDATE users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err = repo.Update(context.Background(), nil, "ada@x.com", &model.User{
		FullName:     "Ada Lovelace",
		Email:        "taken@x.com",
		PasswordHash: "$2a$10$aaaaaaaaaaaaaaaaaaaaaa",
		Phone:        "0811111111",
	})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, http.StatusConflict, common.HTTPStatusFromError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByEmailNoRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPgUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.FindByEmail(context.Background(), nil, "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
