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

	"github.com/redis/go-redis/v9"
)

const roomListCacheKey = "rooms:list"

// RoomService implements the room CRUD behind the uniform resource
// contract. Listings are served through a short-lived Redis cache that every
// mutation invalidates.
type RoomService struct {
	roomRepo repository.RoomRepository
	cache    *redis.Client
	cacheTTL time.Duration
	db       *sql.DB
}

func NewRoomService(roomRepo repository.RoomRepository, cache *redis.Client, cacheTTL time.Duration, db *sql.DB) *RoomService {
	return &RoomService{roomRepo: roomRepo, cache: cache, cacheTTL: cacheTTL, db: db}
}

type CreateRoomRequest struct {
	RoomNumber string  `json:"room_number" validate:"required"`
	RoomType   string  `json:"room_type" validate:"required"`
	Price      float64 `json:"price" validate:"required"`
	Capacity   int     `json:"capacity" validate:"required"`
}

type UpdateRoomRequest struct {
	TargetRoom string  `json:"target_room" validate:"required"`
	RoomNumber string  `json:"room_number" validate:"required"`
	RoomType   string  `json:"room_type" validate:"required"`
	Price      float64 `json:"price" validate:"required"`
	Capacity   int     `json:"capacity" validate:"required"`
	Status     string  `json:"status" validate:"required"`
}

type DeleteRoomRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
}

func (s *RoomService) Create(ctx context.Context, req CreateRoomRequest) (*model.Room, error) {
	if req.Price <= 0 || req.Capacity <= 0 {
		return nil, common.Errorf("price and capacity must be positive: %w", common.ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = s.roomRepo.FindByNumber(ctx, tx, req.RoomNumber)
	if err == nil {
		return nil, common.Errorf("room %s already exists: %w", req.RoomNumber, common.ErrConflict)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, common.Errorf("failed to check existing room: %w", err)
	}

	room := &model.Room{
		RoomNumber: req.RoomNumber,
		RoomType:   req.RoomType,
		Price:      req.Price,
		Capacity:   req.Capacity,
		Status:     model.RoomAvailable,
	}

	if err := s.roomRepo.Create(ctx, tx, room); err != nil {
		return nil, common.Errorf("failed to create room: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	s.invalidateListing(ctx)
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, req UpdateRoomRequest) (*model.Room, error) {
	if !model.ValidRoomStatus(model.RoomStatus(req.Status)) {
		return nil, common.Errorf("valid statuses: available / booked / maintenance: %w", common.ErrValidation)
	}
	if req.Price <= 0 || req.Capacity <= 0 {
		return nil, common.Errorf("price and capacity must be positive: %w", common.ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.roomRepo.FindByNumber(ctx, tx, req.TargetRoom); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("room %s not found: %w", req.TargetRoom, common.ErrNotFound)
		}
		return nil, common.Errorf("failed to check existing room: %w", err)
	}

	room := &model.Room{
		RoomNumber: req.RoomNumber,
		RoomType:   req.RoomType,
		Price:      req.Price,
		Capacity:   req.Capacity,
		Status:     model.RoomStatus(req.Status),
	}

	if err := s.roomRepo.Update(ctx, tx, req.TargetRoom, room); err != nil {
		return nil, common.Errorf("failed to update room: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	s.invalidateListing(ctx)
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, req DeleteRoomRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.roomRepo.FindByNumber(ctx, tx, req.RoomNumber); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errorf("room %s not found: %w", req.RoomNumber, common.ErrNotFound)
		}
		return common.Errorf("failed to check existing room: %w", err)
	}

	if err := s.roomRepo.Delete(ctx, tx, req.RoomNumber); err != nil {
		return common.Errorf("failed to delete room: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return common.Errorf("failed to commit transaction: %w", err)
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *RoomService) GetByNumber(ctx context.Context, roomNumber string) (*model.Room, error) {
	room, err := s.roomRepo.FindByNumber(ctx, nil, roomNumber)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("room %s not found: %w", roomNumber, common.ErrNotFound)
		}
		return nil, common.Errorf("failed to find room: %w", err)
	}
	return room, nil
}

func (s *RoomService) List(ctx context.Context) ([]model.Room, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, roomListCacheKey).Bytes()
		if err == nil {
			var rooms []model.Room
			if err := json.Unmarshal(cached, &rooms); err == nil {
				return rooms, nil
			}
		}
	}

	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list rooms: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(rooms); err == nil {
			if err := s.cache.Set(ctx, roomListCacheKey, payload, s.cacheTTL).Err(); err != nil {
				log.Printf("room listing cache set failed: %v", err)
			}
		}
	}
	return rooms, nil
}

func (s *RoomService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, roomListCacheKey).Err(); err != nil {
		log.Printf("room listing cache invalidation failed: %v", err)
	}
}
