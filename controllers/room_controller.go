package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

// GetRoomsByHotel lists the hotel's room types quoted for a date range.
// ?available=true narrows the result to types with free units.
func (rc *RoomController) GetRoomsByHotel(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid hotel id")
		return
	}

	dateFrom, dateTo, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	var list []services.RoomInfo
	if c.Query("available") == "true" {
		list, err = rc.rooms.Available(c.Request.Context(), uint(hotelID), dateFrom, dateTo)
	} else {
		list, err = rc.rooms.ForHotel(c.Request.Context(), uint(hotelID), dateFrom, dateTo)
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (rc *RoomController) GetRoomByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	room, err := rc.rooms.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := rc.rooms.Create(c.Request.Context(), &room); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	room.ID = uint(id)
	if err := rc.rooms.Update(c.Request.Context(), &room); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	if err := rc.rooms.Delete(c.Request.Context(), uint(id)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	c.Status(http.StatusNoContent)
}
