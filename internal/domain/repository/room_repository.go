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

type RoomRepository interface {
	Create(ctx context.Context, tx *sql.Tx, room *model.Room) error
	Update(ctx context.Context, tx *sql.Tx, targetRoom string, room *model.Room) error
	Delete(ctx context.Context, tx *sql.Tx, roomNumber string) error
	FindByNumber(ctx context.Context, tx *sql.Tx, roomNumber string) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
}

type pgRoomRepository struct {
	db *sql.DB
}

func NewPgRoomRepository(db *sql.DB) RoomRepository {
	return &pgRoomRepository{db: db}
}

func (r *pgRoomRepository) Create(ctx context.Context, tx *sql.Tx, room *model.Room) error {
	query := `INSERT INTO rooms (room_number, room_type, price, capacity, status)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`

	row := r.queryRow(ctx, tx, query, room.RoomNumber, room.RoomType, room.Price, room.Capacity, room.Status)
	if err := row.Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint on room_number
			return fmt.Errorf("room with given number already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgRoomRepository.Create: %w", err)
	}
	return nil
}

func (r *pgRoomRepository) Update(ctx context.Context, tx *sql.Tx, targetRoom string, room *model.Room) error {
	query := `UPDATE rooms
	          SET room_number = $1, room_type = $2, price = $3, capacity = $4, status = $5, updated_at = CURRENT_TIMESTAMP
	          WHERE room_number = $6
	          RETURNING id, created_at, updated_at`

	row := r.queryRow(ctx, tx, query, room.RoomNumber, room.RoomType, room.Price, room.Capacity, room.Status, targetRoom)
	if err := row.Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("room with given number already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgRoomRepository.Update: %w", err)
	}
	return nil
}

func (r *pgRoomRepository) Delete(ctx context.Context, tx *sql.Tx, roomNumber string) error {
	query := `DELETE FROM rooms WHERE room_number = $1`

	var (
		res sql.Result
		err error
	)
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, roomNumber)
	} else {
		res, err = r.db.ExecContext(ctx, query, roomNumber)
	}
	if err != nil {
		return fmt.Errorf("pgRoomRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgRoomRepository) FindByNumber(ctx context.Context, tx *sql.Tx, roomNumber string) (*model.Room, error) {
	query := `SELECT id, room_number, room_type, price, capacity, status, created_at, updated_at
	          FROM rooms WHERE room_number = $1`

	room := &model.Room{}
	err := r.queryRow(ctx, tx, query, roomNumber).Scan(
		&room.ID, &room.RoomNumber, &room.RoomType, &room.Price, &room.Capacity, &room.Status, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRoomRepository.FindByNumber: %w", err)
	}
	return room, nil
}

func (r *pgRoomRepository) List(ctx context.Context) ([]model.Room, error) {
	query := `SELECT id, room_number, room_type, price, capacity, status, created_at, updated_at
	          FROM rooms ORDER BY room_number ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgRoomRepository.List: %w", err)
	}
	defer rows.Close()

	rooms := []model.Room{}
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(
			&room.ID, &room.RoomNumber, &room.RoomType, &room.Price, &room.Capacity, &room.Status, &room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgRoomRepository.List: scan: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *pgRoomRepository) queryRow(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) *sql.Row {
	if tx != nil {
		return tx.QueryRowContext(ctx, query, args...)
	}
	return r.db.QueryRowContext(ctx, query, args...)
}
