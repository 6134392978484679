package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-booking/models"
	"hotel-booking/utils"
)

// RoomService handles room-type CRUD and availability-aware listings.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// RoomInfo is a room type with the quote for a requested date range:
// TotalCost is price times nights, RoomsLeft is quantity minus overlapping
// bookings clamped at zero for display.
type RoomInfo struct {
	ID          uint           `json:"id"`
	HotelID     uint           `json:"hotel_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Services    datatypes.JSON `json:"services"`
	Price       int            `json:"price"`
	Quantity    int            `json:"quantity"`
	ImageID     int            `json:"image_id"`
	TotalCost   int            `json:"total_cost"`
	RoomsLeft   int            `json:"rooms_left"`
}

const roomsForHotelQuery = `
SELECT r.id, r.hotel_id, r.name, r.description, r.services, r.price,
       r.quantity, r.image_id,
       r.price * ? AS total_cost,
       r.quantity - COALESCE(b.booked, 0) AS rooms_left
FROM rooms r
LEFT JOIN (
    SELECT room_id, COUNT(*) AS booked
    FROM bookings
    WHERE date_to >= ? AND date_from <= ?
    GROUP BY room_id
) b ON b.room_id = r.id
WHERE r.hotel_id = ?
ORDER BY r.id`

// ForHotel returns every room type of the hotel, including fully booked
// ones, quoted for [dateFrom, dateTo).
func (s *RoomService) ForHotel(ctx context.Context, hotelID uint, dateFrom, dateTo time.Time) ([]RoomInfo, error) {
	rooms, err := s.queryForHotel(ctx, hotelID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].RoomsLeft < 0 {
			rooms[i].RoomsLeft = 0
		}
	}
	return rooms, nil
}

// Available returns only the room types with at least one free unit.
func (s *RoomService) Available(ctx context.Context, hotelID uint, dateFrom, dateTo time.Time) ([]RoomInfo, error) {
	rooms, err := s.queryForHotel(ctx, hotelID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	available := make([]RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		if room.RoomsLeft > 0 {
			available = append(available, room)
		}
	}
	return available, nil
}

func (s *RoomService) queryForHotel(ctx context.Context, hotelID uint, dateFrom, dateTo time.Time) ([]RoomInfo, error) {
	nights := utils.Nights(dateFrom, dateTo)
	var rooms []RoomInfo
	err := s.DB.WithContext(ctx).
		Raw(roomsForHotelQuery, nights, dateFrom, dateTo, hotelID).
		Scan(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms for hotel %d: %w", hotelID, err)
	}
	if rooms == nil {
		rooms = []RoomInfo{}
	}
	return rooms, nil
}

func (s *RoomService) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return &room, nil
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	if room.Quantity < 0 {
		return fmt.Errorf("validation: quantity cannot be negative")
	}
	return s.DB.WithContext(ctx).Create(room).Error
}

// Update writes the full row. Columns are selected explicitly so zero
// values (quantity 0, cleared description) are persisted too.
func (s *RoomService) Update(ctx context.Context, room *models.Room) error {
	if room.Quantity < 0 {
		return fmt.Errorf("validation: quantity cannot be negative")
	}
	return s.DB.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", room.ID).
		Select("hotel_id", "name", "description", "price", "services", "quantity", "image_id").
		Updates(room).Error
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.Room{}, id).Error
}
