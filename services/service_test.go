package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/utils"
)

// newTestDB opens an in-memory SQLite database scoped to the test. The
// shared-cache name keeps the database alive across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, HashedPassword: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedHotel(t *testing.T, db *gorm.DB, name, location string) models.Hotel {
	t.Helper()
	hotel := models.Hotel{
		Name:          name,
		Location:      location,
		Services:      datatypes.JSON([]byte(`["Wi-Fi"]`)),
		RoomsQuantity: 10,
		ImageID:       1,
	}
	require.NoError(t, db.Create(&hotel).Error)
	return hotel
}

func seedRoom(t *testing.T, db *gorm.DB, hotelID uint, name string, price, quantity int) models.Room {
	t.Helper()
	room := models.Room{
		HotelID:  hotelID,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		ImageID:  1,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedBooking(t *testing.T, db *gorm.DB, roomID, userID uint, from, to string, price int) models.Booking {
	t.Helper()
	dateFrom := date(t, from)
	dateTo := date(t, to)
	nights := utils.Nights(dateFrom, dateTo)
	booking := models.Booking{
		RoomID:    roomID,
		UserID:    userID,
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Price:     price,
		TotalCost: price * nights,
		TotalDays: nights,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}
