package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homestay-backend/middleware"
	"homestay-backend/services"
)

// PageController renders the public pages: home and room detail.
type PageController struct {
	Rooms RoomStore
}

func NewPageController(rooms RoomStore) *PageController {
	return &PageController{Rooms: rooms}
}

func (pc *PageController) Home(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	rooms, err := pc.Rooms.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("failed to load rooms for home page: %v", err)
		c.HTML(http.StatusInternalServerError, "home.html", gin.H{
			"user":         user,
			"errorMessage": "System error, please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"user":    user,
		"rooms":   rooms,
		"isAdmin": user.Can("roomManagement.view"),
	})
}

func (pc *PageController) RoomDetail(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.HTML(http.StatusBadRequest, "room-detail.html", gin.H{
			"user":         user,
			"errorMessage": "This room does not exist.",
		})
		return
	}

	room, err := pc.Rooms.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			c.HTML(http.StatusNotFound, "room-detail.html", gin.H{
				"user":         user,
				"errorMessage": "This room does not exist.",
			})
			return
		}
		log.Printf("failed to load room %d: %v", id, err)
		c.HTML(http.StatusInternalServerError, "room-detail.html", gin.H{
			"user":         user,
			"errorMessage": "System error, please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "room-detail.html", gin.H{"user": user, "room": room})
}
