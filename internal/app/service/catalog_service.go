package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"hotel_hub/internal/common"
	"hotel_hub/internal/domain/model"
	"hotel_hub/internal/domain/repository"

	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
)

const serviceListCacheKey = "services:list"

// CatalogService manages the hotel service catalog (spa, laundry, room
// service and so on) behind the same contract as rooms.
type CatalogService struct {
	serviceRepo repository.ServiceRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	db          *sql.DB
}

func NewCatalogService(serviceRepo repository.ServiceRepository, cache *redis.Client, cacheTTL time.Duration, db *sql.DB) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo, cache: cache, cacheTTL: cacheTTL, db: db}
}

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"required"`
	Description string  `json:"description" validate:"required"`
}

type UpdateServiceRequest struct {
	TargetID    int64   `json:"target_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"required"`
	Description string  `json:"description" validate:"required"`
}

type DeleteServiceRequest struct {
	ID int64 `json:"id" validate:"required"`
}

func (s *CatalogService) Create(ctx context.Context, req CreateServiceRequest) (*model.Service, error) {
	if !model.ValidServiceCategory(model.ServiceCategory(req.Category)) {
		return nil, common.Errorf("valid categories: room_service / cleaning / food / laundry / spa: %w", common.ErrValidation)
	}
	if req.Price <= 0 {
		return nil, common.Errorf("price must be positive: %w", common.ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	svc := &model.Service{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Category:    model.ServiceCategory(req.Category),
		Price:       req.Price,
		Description: req.Description,
	}

	// Duplicate names surface as a conflict through the unique constraint.
	if err := s.serviceRepo.Create(ctx, tx, svc); err != nil {
		return nil, common.Errorf("failed to create service: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	s.invalidateListing(ctx)
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, req UpdateServiceRequest) (*model.Service, error) {
	if !model.ValidServiceCategory(model.ServiceCategory(req.Category)) {
		return nil, common.Errorf("valid categories: room_service / cleaning / food / laundry / spa: %w", common.ErrValidation)
	}
	if req.Price <= 0 {
		return nil, common.Errorf("price must be positive: %w", common.ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.serviceRepo.FindByID(ctx, tx, req.TargetID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("service %d not found: %w", req.TargetID, common.ErrNotFound)
		}
		return nil, common.Errorf("failed to check existing service: %w", err)
	}

	svc := &model.Service{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Category:    model.ServiceCategory(req.Category),
		Price:       req.Price,
		Description: req.Description,
	}

	if err := s.serviceRepo.Update(ctx, tx, req.TargetID, svc); err != nil {
		return nil, common.Errorf("failed to update service: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	s.invalidateListing(ctx)
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, req DeleteServiceRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.serviceRepo.FindByID(ctx, tx, req.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errorf("service %d not found: %w", req.ID, common.ErrNotFound)
		}
		return common.Errorf("failed to check existing service: %w", err)
	}

	if err := s.serviceRepo.Delete(ctx, tx, req.ID); err != nil {
		return common.Errorf("failed to delete service: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return common.Errorf("failed to commit transaction: %w", err)
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *CatalogService) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	svc, err := s.serviceRepo.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("service %d not found: %w", id, common.ErrNotFound)
		}
		return nil, common.Errorf("failed to find service: %w", err)
	}
	return svc, nil
}

func (s *CatalogService) List(ctx context.Context) ([]model.Service, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, serviceListCacheKey).Bytes()
		if err == nil {
			var services []model.Service
			if err := json.Unmarshal(cached, &services); err == nil {
				return services, nil
			}
		}
	}

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list services: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(services); err == nil {
			if err := s.cache.Set(ctx, serviceListCacheKey, payload, s.cacheTTL).Err(); err != nil {
				log.Printf("service listing cache set failed: %v", err)
			}
		}
	}
	return services, nil
}

func (s *CatalogService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, serviceListCacheKey).Err(); err != nil {
		log.Printf("service listing cache invalidation failed: %v", err)
	}
}
