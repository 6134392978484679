package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-booking/models"
)

var ErrHotelNotFound = errors.New("hotel_not_found")

// HotelService handles the hotel catalog and availability-aware search.
type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

// HotelInfo is a hotel with the number of free units across all of its room
// types for a searched date range.
type HotelInfo struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Location      string         `json:"location"`
	Services      datatypes.JSON `json:"services"`
	RoomsQuantity int            `json:"rooms_quantity"`
	ImageID       int            `json:"image_id"`
	RoomsLeft     int            `json:"rooms_left"`
}

// Each room type's free count is clamped at zero before summing, so an
// oversold type (quantity reduced below its open bookings) cannot cancel out
// another type's genuinely free units.
const searchHotelsQuery = `
SELECT h.id, h.name, h.location, h.services, h.rooms_quantity, h.image_id,
       COALESCE(SUM(
           CASE WHEN r.quantity - COALESCE(b.booked, 0) > 0
                THEN r.quantity - COALESCE(b.booked, 0)
                ELSE 0
           END), 0) AS rooms_left
FROM hotels h
LEFT JOIN rooms r ON r.hotel_id = h.id
LEFT JOIN (
    SELECT room_id, COUNT(*) AS booked
    FROM bookings
    WHERE date_to >= ? AND date_from <= ?
    GROUP BY room_id
) b ON b.room_id = r.id
WHERE LOWER(h.location) LIKE ?
GROUP BY h.id, h.name, h.location, h.services, h.rooms_quantity, h.image_id
HAVING rooms_left > 0
ORDER BY h.id`

// Search returns hotels whose location contains the query (case-insensitive)
// and that still have free units for [dateFrom, dateTo).
func (s *HotelService) Search(ctx context.Context, location string, dateFrom, dateTo time.Time) ([]HotelInfo, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(location)) + "%"
	var hotels []HotelInfo
	err := s.DB.WithContext(ctx).
		Raw(searchHotelsQuery, dateFrom, dateTo, pattern).
		Scan(&hotels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search hotels in %q: %w", location, err)
	}
	if hotels == nil {
		hotels = []HotelInfo{}
	}
	return hotels, nil
}

func (s *HotelService) GetByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.WithContext(ctx).First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to load hotel %d: %w", id, err)
	}
	return &hotel, nil
}

func (s *HotelService) Create(ctx context.Context, hotel *models.Hotel) error {
	return s.DB.WithContext(ctx).Create(hotel).Error
}

// Update writes the full row so zero values are persisted too.
func (s *HotelService) Update(ctx context.Context, hotel *models.Hotel) error {
	return s.DB.WithContext(ctx).Model(&models.Hotel{}).
		Where("id = ?", hotel.ID).
		Select("name", "location", "services", "rooms_quantity", "image_id").
		Updates(hotel).Error
}

func (s *HotelService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.Hotel{}, id).Error
}
