package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

type newBookingPayload struct {
	RoomID   uint   `json:"room_id" binding:"required"`
	DateFrom string `json:"date_from" binding:"required"`
	DateTo   string `json:"date_to" binding:"required"`
}

// GetBookings lists the authenticated user's bookings with room details.
func (bc *BookingController) GetBookings(c *gin.Context) {
	user := middleware.CurrentUser(c)
	list, err := bc.bookings.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// CreateBooking validates the requested stay and attempts to reserve one
// unit. No availability is 409; storage failures are a generic 500.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var payload newBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	dateFrom, err := utils.ParseDate(payload.DateFrom)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	dateTo, err := utils.ParseDate(payload.DateTo)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateStay(dateFrom, dateTo, time.Now().UTC()); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	booking, err := bc.bookings.Create(c.Request.Context(), user.ID, payload.RoomID, dateFrom, dateTo)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, booking)
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, "room not found")
	case errors.Is(err, services.ErrNoAvailability):
		utils.JSONError(c, http.StatusConflict, "no rooms left for these dates")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking could not be completed")
	}
}

// GetFreeUnits reports how many units of a room type are free for a range.
// The raw count is clamped at zero here; only the booking decision uses the
// signed value.
func (bc *BookingController) GetFreeUnits(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	dateFrom, dateTo, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	free, err := bc.bookings.FreeUnits(c.Request.Context(), uint(roomID), dateFrom, dateTo)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability")
		return
	}
	if free < 0 {
		free = 0
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"room_id": roomID, "rooms_left": free})
}

// DeleteBooking removes one of the caller's bookings. Deleting someone
// else's booking, or a missing one, is a silent no-op.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	user := middleware.CurrentUser(c)
	if err := bc.bookings.Delete(c.Request.Context(), uint(bookingID), user.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete booking")
		return
	}
	c.Status(http.StatusNoContent)
}

// dateRangeFromQuery parses date_from/date_to query params, writing the
// error response itself when they are missing or inverted.
func dateRangeFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	dateFrom, err := utils.ParseDate(c.Query("date_from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return time.Time{}, time.Time{}, false
	}
	dateTo, err := utils.ParseDate(c.Query("date_to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return time.Time{}, time.Time{}, false
	}
	if err := utils.ValidateRange(dateFrom, dateTo); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return time.Time{}, time.Time{}, false
	}
	return dateFrom, dateTo, true
}
