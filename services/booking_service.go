package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-booking/models"
	"hotel-booking/utils"
)

var (
	ErrRoomNotFound = errors.New("room_not_found")

	// ErrNoAvailability is a normal business outcome, not a failure:
	// every unit of the room type is taken for the requested range.
	ErrNoAvailability = errors.New("no_availability")

	// ErrCannotBook hides storage failures from callers. The detail is
	// logged with full request context before this is returned.
	ErrCannotBook = errors.New("cannot_complete_booking")
)

// BookingService owns the availability computation and the booking lifecycle.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// BookingInfo is a booking joined with the details of its room, as listed
// back to the owning user.
type BookingInfo struct {
	ID          uint           `json:"id"`
	RoomID      uint           `json:"room_id"`
	UserID      uint           `json:"user_id"`
	DateFrom    time.Time      `json:"date_from"`
	DateTo      time.Time      `json:"date_to"`
	Price       int            `json:"price"`
	TotalCost   int            `json:"total_cost"`
	TotalDays   int            `json:"total_days"`
	ImageID     int            `json:"image_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Services    datatypes.JSON `json:"services"`
}

// overlapping scopes bookings of the room whose interval intersects
// [dateFrom, dateTo]. Boundaries are inclusive on both sides: a booking
// ending exactly on dateFrom, or starting exactly on dateTo, counts as
// overlapping. Deliberately stricter than half-open interval semantics.
func overlapping(tx *gorm.DB, roomID uint, dateFrom, dateTo time.Time) *gorm.DB {
	return tx.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("date_to >= ? AND date_from <= ?", dateFrom, dateTo)
}

// lockForUpdate takes a row lock so that concurrent bookings of the same
// room serialize on the read-then-insert. SQLite (the test database) has no
// FOR UPDATE; its single-writer model already provides the guarantee.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// FreeUnits returns the room's quantity minus the count of overlapping
// bookings. The raw value may be negative; callers clamp it for display but
// use it as-is for booking decisions.
func (s *BookingService) FreeUnits(ctx context.Context, roomID uint, dateFrom, dateTo time.Time) (int, error) {
	tx := s.DB.WithContext(ctx)
	var room models.Room
	if err := tx.Select("id", "quantity").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrRoomNotFound
		}
		return 0, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	return freeForRoom(tx, &room, dateFrom, dateTo)
}

// freeForRoom is the one place the availability computation lives: the
// room's quantity minus its overlapping bookings, on whatever tx the caller
// runs (plain read or locked transaction).
func freeForRoom(tx *gorm.DB, room *models.Room, dateFrom, dateTo time.Time) (int, error) {
	var booked int64
	if err := overlapping(tx, room.ID, dateFrom, dateTo).Count(&booked).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings for room %d: %w", room.ID, err)
	}
	return room.Quantity - int(booked), nil
}

// Create reserves one unit of the room for [dateFrom, dateTo). The free-unit
// read and the insert run in one transaction with the room row locked, so
// two requests for the last unit cannot both succeed. Date validation is the
// caller's concern; this primitive only requires dateFrom <= dateTo.
func (s *BookingService) Create(ctx context.Context, userID, roomID uint, dateFrom, dateTo time.Time) (*models.Booking, error) {
	var booking models.Booking

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockForUpdate(tx).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		free, err := freeForRoom(tx, &room, dateFrom, dateTo)
		if err != nil {
			return err
		}
		if free <= 0 {
			return ErrNoAvailability
		}

		nights := utils.Nights(dateFrom, dateTo)
		booking = models.Booking{
			RoomID:    roomID,
			UserID:    userID,
			DateFrom:  dateFrom,
			DateTo:    dateTo,
			Price:     room.Price,
			TotalCost: room.Price * nights,
			TotalDays: nights,
		}
		return tx.Create(&booking).Error
	})

	switch {
	case txErr == nil:
		return &booking, nil
	case errors.Is(txErr, ErrNoAvailability), errors.Is(txErr, ErrRoomNotFound):
		return nil, txErr
	default:
		log.Error().Err(txErr).
			Uint("user_id", userID).
			Uint("room_id", roomID).
			Time("date_from", dateFrom).
			Time("date_to", dateTo).
			Msg("cannot add booking")
		return nil, ErrCannotBook
	}
}

// ListByUser returns the user's bookings with room details attached.
func (s *BookingService) ListByUser(ctx context.Context, userID uint) ([]BookingInfo, error) {
	var list []BookingInfo
	err := s.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.id, bookings.room_id, bookings.user_id, bookings.date_from, bookings.date_to, "+
			"bookings.price, bookings.total_cost, bookings.total_days, "+
			"rooms.image_id, rooms.name, rooms.description, rooms.services").
		Joins("LEFT JOIN rooms ON rooms.id = bookings.room_id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.id").
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %d: %w", userID, err)
	}
	if list == nil {
		list = []BookingInfo{}
	}
	return list, nil
}

// Delete removes the booking only when it belongs to userID. A booking that
// is missing, or owned by someone else, matches no rows; that is still
// success with zero effect.
func (s *BookingService) Delete(ctx context.Context, bookingID, userID uint) error {
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookingID, userID).
		Delete(&models.Booking{}).Error; err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", bookingID, err)
	}
	return nil
}
