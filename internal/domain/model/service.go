package model

import "time"

type ServiceCategory string

const (
	CategoryRoomService ServiceCategory = "room_service"
	CategoryCleaning    ServiceCategory = "cleaning"
	CategoryFood        ServiceCategory = "food"
	CategoryLaundry     ServiceCategory = "laundry"
	CategorySpa         ServiceCategory = "spa"
)

// ValidServiceCategory reports whether c is one of the accepted categories.
func ValidServiceCategory(c ServiceCategory) bool {
	switch c {
	case CategoryRoomService, CategoryCleaning, CategoryFood, CategoryLaundry, CategorySpa:
		return true
	}
	return false
}

// Service is a bookable hotel amenity shown on the marketing pages.
type Service struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Category    ServiceCategory `json:"category"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
