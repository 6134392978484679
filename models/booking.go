package models

import "time"

// Booking reserves one unit of a room type for [DateFrom, DateTo).
// Price is a snapshot of the room's nightly price at booking time;
// TotalCost and TotalDays are derived from it inside the create path
// and are never accepted from callers.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"column:room_id;index;not null" json:"room_id"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	DateFrom  time.Time `gorm:"column:date_from;not null" json:"date_from"`
	DateTo    time.Time `gorm:"column:date_to;not null" json:"date_to"`
	Price     int       `gorm:"not null" json:"price"`
	TotalCost int       `gorm:"column:total_cost;not null" json:"total_cost"`
	TotalDays int       `gorm:"column:total_days;not null" json:"total_days"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"-"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
