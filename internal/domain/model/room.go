package model

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomBooked      RoomStatus = "booked"
	RoomMaintenance RoomStatus = "maintenance"
)

// ValidRoomStatus reports whether s is one of the accepted room states.
func ValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomAvailable, RoomBooked, RoomMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID         int64      `json:"id"`
	RoomNumber string     `json:"room_number"`
	RoomType   string     `json:"room_type"`
	Price      float64    `json:"price"`
	Capacity   int        `json:"capacity"`
	Status     RoomStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
