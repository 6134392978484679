package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/models"
	"hotel-booking/routes"
	"hotel-booking/services"
)

type apiEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupAPI(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	cfg := &config.Config{
		Mode:        "test",
		LogLevel:    "error",
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		CORSOrigins: []string{"http://localhost:3000"},
	}

	authService := services.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(db)
	hotelService := services.NewHotelService(db)
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db)

	router := routes.SetupRouter(
		cfg,
		authService,
		userService,
		controllers.NewAuthController(userService, authService, cfg.TokenTTL),
		controllers.NewHotelController(hotelService),
		controllers.NewRoomController(roomService),
		controllers.NewBookingController(bookingService),
	)
	return &apiEnv{router: router, db: db}
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *apiEnv) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	creds := gin.H{"email": email, "password": "s3cure-pass"}

	w := e.do(t, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func (e *apiEnv) seedRoom(t *testing.T, quantity int) models.Room {
	t.Helper()
	hotel := models.Hotel{Name: "Altai Resort", Location: "Altai Republic", RoomsQuantity: quantity}
	require.NoError(t, e.db.Create(&hotel).Error)
	room := models.Room{HotelID: hotel.ID, Name: "Standard", Price: 3700, Quantity: quantity}
	require.NoError(t, e.db.Create(&room).Error)
	return room
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupAPI(t)
	creds := gin.H{"email": "guest@example.com", "password": "s3cure-pass"}

	w := env.do(t, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := setupAPI(t)
	env.registerAndLogin(t, "guest@example.com")

	w := env.do(t, http.MethodPost, "/api/auth/login", "",
		gin.H{"email": "guest@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingsRequireAuth(t *testing.T) {
	env := setupAPI(t)
	w := env.do(t, http.MethodGet, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingLifecycle(t *testing.T) {
	env := setupAPI(t)
	room := env.seedRoom(t, 1)
	token := env.registerAndLogin(t, "guest@example.com")

	from := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	to := time.Now().UTC().AddDate(0, 1, 4).Format("2006-01-02")
	payload := gin.H{"room_id": room.ID, "date_from": from, "date_to": to}

	// First booking takes the only unit.
	w := env.do(t, http.MethodPost, "/api/bookings", token, payload)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		Data models.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 4, created.Data.TotalDays)
	assert.Equal(t, 4*3700, created.Data.TotalCost)

	// Second request for the same window is a conflict, not an error.
	w = env.do(t, http.MethodPost, "/api/bookings", token, payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The availability endpoint agrees.
	w = env.do(t, http.MethodGet,
		fmt.Sprintf("/api/rooms/%d/availability?date_from=%s&date_to=%s", room.ID, from, to), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var avail struct {
		Data struct {
			RoomsLeft int `json:"rooms_left"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
	assert.Equal(t, 0, avail.Data.RoomsLeft)

	// Listing shows the booking, deletion frees the unit.
	w = env.do(t, http.MethodGet, "/api/bookings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []services.BookingInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", list.Data[0].ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodPost, "/api/bookings", token, payload)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateBookingValidation(t *testing.T) {
	env := setupAPI(t)
	room := env.seedRoom(t, 1)
	token := env.registerAndLogin(t, "guest@example.com")

	// Inverted dates.
	w := env.do(t, http.MethodPost, "/api/bookings", token, gin.H{
		"room_id":   room.ID,
		"date_from": time.Now().UTC().AddDate(0, 1, 4).Format("2006-01-02"),
		"date_to":   time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02"),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Stay starting in the past.
	w = env.do(t, http.MethodPost, "/api/bookings", token, gin.H{
		"room_id":   room.ID,
		"date_from": "2023-05-01",
		"date_to":   "2023-05-05",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown room.
	w = env.do(t, http.MethodPost, "/api/bookings", token, gin.H{
		"room_id":   999,
		"date_from": time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02"),
		"date_to":   time.Now().UTC().AddDate(0, 1, 4).Format("2006-01-02"),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminGuardOnCatalogWrites(t *testing.T) {
	env := setupAPI(t)
	token := env.registerAndLogin(t, "guest@example.com")

	hotel := gin.H{"name": "City Hotel", "location": "Moscow", "rooms_quantity": 5}
	w := env.do(t, http.MethodPost, "/api/hotels", token, hotel)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Promote the user and retry.
	require.NoError(t, env.db.Model(&models.User{}).
		Where("email = ?", "guest@example.com").
		Update("role", models.RoleAdmin).Error)

	w = env.do(t, http.MethodPost, "/api/hotels", token, hotel)
	assert.Equal(t, http.StatusCreated, w.Code)
}
