package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchHotelsByLocationWithFreeRooms(t *testing.T) {
	db := newTestDB(t)
	svc := NewHotelService(db)
	ctx := context.Background()

	user := seedUser(t, db, "guest@example.com")
	altai := seedHotel(t, db, "Altai Resort", "Altai Republic, Aya village")
	moscow := seedHotel(t, db, "City Hotel", "Moscow, Tverskaya street")
	seedRoom(t, db, altai.ID, "Standard", 3700, 2)
	seedRoom(t, db, altai.ID, "Deluxe", 7300, 1)
	room := seedRoom(t, db, moscow.ID, "Standard", 5000, 1)

	// Case-insensitive substring match on location.
	hotels, err := svc.Search(ctx, "altai", date(t, "2023-06-01"), date(t, "2023-06-05"))
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, altai.ID, hotels[0].ID)
	assert.Equal(t, 3, hotels[0].RoomsLeft)

	// Fully booked hotels drop out of the results.
	seedBooking(t, db, room.ID, user.ID, "2023-06-01", "2023-06-05", 5000)
	hotels, err = svc.Search(ctx, "moscow", date(t, "2023-06-03"), date(t, "2023-06-04"))
	require.NoError(t, err)
	assert.Empty(t, hotels)

	// Free again outside the booked window.
	hotels, err = svc.Search(ctx, "moscow", date(t, "2023-07-01"), date(t, "2023-07-05"))
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, 1, hotels[0].RoomsLeft)
}

func TestSearchHotelsOversoldTypeCannotHideFreeType(t *testing.T) {
	db := newTestDB(t)
	svc := NewHotelService(db)
	ctx := context.Background()

	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, "Altai Resort", "Altai Republic, Aya village")
	standard := seedRoom(t, db, hotel.ID, "Standard", 3700, 1)
	seedRoom(t, db, hotel.ID, "Deluxe", 7300, 1)

	// Standard is oversold: its quantity was reduced to 1 after two
	// overlapping bookings were taken, so its raw free count is -1.
	seedBooking(t, db, standard.ID, user.ID, "2023-05-01", "2023-05-10", 3700)
	seedBooking(t, db, standard.ID, user.ID, "2023-05-05", "2023-05-12", 3700)

	// The free Deluxe unit must still surface the hotel.
	hotels, err := svc.Search(ctx, "altai", date(t, "2023-05-08"), date(t, "2023-05-09"))
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, hotel.ID, hotels[0].ID)
	assert.Equal(t, 1, hotels[0].RoomsLeft)
}

func TestHotelCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewHotelService(db)
	ctx := context.Background()

	hotel := seedHotel(t, db, "Altai Resort", "Altai Republic, Aya village")

	got, err := svc.GetByID(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, "Altai Resort", got.Name)

	got.Name = "Altai Grand Resort"
	got.ImageID = 0
	require.NoError(t, svc.Update(ctx, got))
	got, err = svc.GetByID(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, "Altai Grand Resort", got.Name)
	assert.Equal(t, 0, got.ImageID)

	require.NoError(t, svc.Delete(ctx, hotel.ID))
	_, err = svc.GetByID(ctx, hotel.ID)
	assert.ErrorIs(t, err, ErrHotelNotFound)
}
