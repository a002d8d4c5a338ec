package service

import (
	"context"
	"database/sql"
	"errors"

	"hotel_hub/internal/common"
	"hotel_hub/internal/common/security"
	"hotel_hub/internal/domain/model"
	"hotel_hub/internal/domain/repository"

	"github.com/google/uuid"
)

// AuthService orchestrates the credential store, password hasher and token
// issuer for the register/login/update/delete flows.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenManager
	db       *sql.DB // For transactions
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenManager, db *sql.DB) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, db: db}
}

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	TargetEmail string `json:"target_email" validate:"required,email"`
	FullName    string `json:"full_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
}

type DeleteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	// Advisory only: the unique constraint on users.email is what actually
	// holds under concurrent registrations.
	_, err = s.userRepo.FindByEmail(ctx, tx, req.Email)
	if err == nil {
		return nil, common.Errorf("user with email %s already exists: %w", req.Email, common.ErrConflict)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, common.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, common.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		Role:         model.RoleUser, // Default role
	}

	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		return nil, common.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a signed token. The handler decides
// how the token travels back (cookie).
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, nil, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.Errorf("user with email %s not found: %w", req.Email, common.ErrNotFound)
		}
		return nil, "", common.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", common.Errorf("invalid credentials: %w", common.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", common.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Update replaces every mutable attribute of the user addressed by the
// previous email. The password is always rehashed; there is no
// leave-unchanged path.
func (s *AuthService) Update(ctx context.Context, req UpdateUserRequest) (*model.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.userRepo.FindByEmail(ctx, tx, req.TargetEmail); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("user with email %s not found: %w", req.TargetEmail, common.ErrNotFound)
		}
		return nil, common.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, common.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
	}

	if err := s.userRepo.Update(ctx, tx, req.TargetEmail, user); err != nil {
		return nil, common.Errorf("failed to update user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	return user, nil
}

func (s *AuthService) Delete(ctx context.Context, req DeleteUserRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.userRepo.FindByEmail(ctx, tx, req.Email); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errorf("user with email %s not found: %w", req.Email, common.ErrNotFound)
		}
		return common.Errorf("failed to check existing user: %w", err)
	}

	if err := s.userRepo.Delete(ctx, tx, req.Email); err != nil {
		return common.Errorf("failed to delete user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return common.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *AuthService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("user with email %s not found: %w", email, common.ErrNotFound)
		}
		return nil, common.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *AuthService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
