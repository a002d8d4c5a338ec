package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"hotel_hub/internal/app/service"
	"hotel_hub/internal/common"
	"hotel_hub/internal/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoomRepo struct {
	rooms     map[string]*model.Room
	nextID    int64
	listCalls int
}

func newStubRoomRepo() *stubRoomRepo {
	return &stubRoomRepo{rooms: map[string]*model.Room{}, nextID: 1}
}

func (s *stubRoomRepo) Create(ctx context.Context, tx *sql.Tx, room *model.Room) error {
	if _, ok := s.rooms[room.RoomNumber]; ok {
		return common.ErrConflict
	}
	room.ID = s.nextID
	s.nextID++
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	s.rooms[room.RoomNumber] = room
	return nil
}

func (s *stubRoomRepo) Update(ctx context.Context, tx *sql.Tx, targetRoom string, room *model.Room) error {
	existing, ok := s.rooms[targetRoom]
	if !ok {
		return common.ErrNotFound
	}
	room.ID = existing.ID
	room.CreatedAt = existing.CreatedAt
	room.UpdatedAt = time.Now()
	delete(s.rooms, targetRoom)
	s.rooms[room.RoomNumber] = room
	return nil
}

func (s *stubRoomRepo) Delete(ctx context.Context, tx *sql.Tx, roomNumber string) error {
	if _, ok := s.rooms[roomNumber]; !ok {
		return common.ErrNotFound
	}
	delete(s.rooms, roomNumber)
	return nil
}

func (s *stubRoomRepo) FindByNumber(ctx context.Context, tx *sql.Tx, roomNumber string) (*model.Room, error) {
	room, ok := s.rooms[roomNumber]
	if !ok {
		return nil, common.ErrNotFound
	}
	return room, nil
}

func (s *stubRoomRepo) List(ctx context.Context) ([]model.Room, error) {
	s.listCalls++
	rooms := []model.Room{}
	for _, r := range s.rooms {
		rooms = append(rooms, *r)
	}
	return rooms, nil
}

func newTestCache(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRoomCreateDefaultsToAvailable(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newStubRoomRepo()
	svc := service.NewRoomService(repo, nil, time.Minute, db)

	room, err := svc.Create(context.Background(), service.CreateRoomRequest{
		RoomNumber: "101",
		RoomType:   "deluxe",
		Price:      150,
		Capacity:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoomAvailable, room.Status)
	assert.NotZero(t, room.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomCreateRejectsNonPositiveValues(t *testing.T) {
	db, mock := newSQLMockDB(t)

	svc := service.NewRoomService(newStubRoomRepo(), nil, time.Minute, db)

	_, err := svc.Create(context.Background(), service.CreateRoomRequest{
		RoomNumber: "101",
		RoomType:   "deluxe",
		Price:      -5,
		Capacity:   2,
	})
	assert.ErrorIs(t, err, common.ErrValidation)
	// Rejected before any transaction is opened.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomCreateDuplicateNumber(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newStubRoomRepo()
	repo.rooms["101"] = &model.Room{ID: 1, RoomNumber: "101"}
	svc := service.NewRoomService(repo, nil, time.Minute, db)

	_, err := svc.Create(context.Background(), service.CreateRoomRequest{
		RoomNumber: "101",
		RoomType:   "deluxe",
		Price:      150,
		Capacity:   2,
	})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomUpdateRejectsUnknownStatus(t *testing.T) {
	db, mock := newSQLMockDB(t)

	svc := service.NewRoomService(newStubRoomRepo(), nil, time.Minute, db)

	_, err := svc.Update(context.Background(), service.UpdateRoomRequest{
		TargetRoom: "101",
		RoomNumber: "101",
		RoomType:   "deluxe",
		Price:      150,
		Capacity:   2,
		Status:     "occupied",
	})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomUpdateUnknownTarget(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := service.NewRoomService(newStubRoomRepo(), nil, time.Minute, db)

	_, err := svc.Update(context.Background(), service.UpdateRoomRequest{
		TargetRoom: "999",
		RoomNumber: "999",
		RoomType:   "deluxe",
		Price:      150,
		Capacity:   2,
		Status:     string(model.RoomBooked),
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomListIsCached(t *testing.T) {
	db, _ := newSQLMockDB(t)

	repo := newStubRoomRepo()
	repo.rooms["101"] = &model.Room{ID: 1, RoomNumber: "101", Status: model.RoomAvailable}
	svc := service.NewRoomService(repo, newTestCache(t), time.Minute, db)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls, "second listing should be served from cache")
}

func TestRoomMutationInvalidatesListingCache(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newStubRoomRepo()
	svc := service.NewRoomService(repo, newTestCache(t), time.Minute, db)

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	_, err = svc.Create(context.Background(), service.CreateRoomRequest{
		RoomNumber: "102",
		RoomType:   "suite",
		Price:      300,
		Capacity:   4,
	})
	require.NoError(t, err)

	rooms, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "mutation should force the next listing back to the repository")
	assert.Len(t, rooms, 1)
}
