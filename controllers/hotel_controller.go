package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type HotelController struct {
	hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) *HotelController {
	return &HotelController{hotels: hotels}
}

// SearchHotels finds hotels by location substring that still have free
// units for the requested range.
func (hc *HotelController) SearchHotels(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		utils.JSONError(c, http.StatusBadRequest, "location is required")
		return
	}

	dateFrom, dateTo, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	hotels, err := hc.hotels.Search(c.Request.Context(), location, dateFrom, dateTo)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to search hotels")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

func (hc *HotelController) GetHotelByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
		return
	}

	hotel, err := hc.hotels.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrHotelNotFound) {
			utils.JSONError(c, http.StatusNotFound, "hotel not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve hotel")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func (hc *HotelController) CreateHotel(c *gin.Context) {
	var hotel models.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := hc.hotels.Create(c.Request.Context(), &hotel); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create hotel")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hotel)
}

func (hc *HotelController) UpdateHotel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
		return
	}

	var hotel models.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	hotel.ID = uint(id)
	if err := hc.hotels.Update(c.Request.Context(), &hotel); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update hotel")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func (hc *HotelController) DeleteHotel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
		return
	}
	if err := hc.hotels.Delete(c.Request.Context(), uint(id)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete hotel")
		return
	}
	c.Status(http.StatusNoContent)
}
