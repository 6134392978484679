package models

import (
	"time"

	"gorm.io/datatypes"
)

// Room is a bookable room type, not a physical room: Quantity interchangeable
// units share one nightly Price. Availability is always computed against
// Quantity, never stored.
type Room struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	HotelID     uint           `gorm:"column:hotel_id;index;not null" json:"hotel_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Price       int            `gorm:"not null" json:"price"`
	Services    datatypes.JSON `gorm:"column:services" json:"services,omitempty"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	ImageID     int            `gorm:"column:image_id" json:"image_id"`

	Hotel Hotel `gorm:"foreignKey:HotelID;references:ID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
