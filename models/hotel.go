package models

import (
	"time"

	"gorm.io/datatypes"
)

// Hotel is a property listing. Services holds a JSON array of strings,
// e.g. ["Wi-Fi", "Parking", "Breakfast"].
type Hotel struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Location      string         `gorm:"size:255;not null;index" json:"location"`
	Services      datatypes.JSON `gorm:"column:services" json:"services"`
	RoomsQuantity int            `gorm:"column:rooms_quantity;not null" json:"rooms_quantity"`
	ImageID       int            `gorm:"column:image_id" json:"image_id"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
