package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/gin-gonic/gin"

	"homestay-backend/models"
	"homestay-backend/services"
	"homestay-backend/utils"
)

// RoomStore is the slice of the room service the admin CRUD endpoints need.
type RoomStore interface {
	GetAll(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, id uint) (models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uint) error
}

// RoomController serves the admin room CRUD as a JSON API.
type RoomController struct {
	Rooms RoomStore
}

func NewRoomController(rooms RoomStore) *RoomController {
	return &RoomController{Rooms: rooms}
}

type roomPayload struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	Amenities    string   `json:"amenities"`
	ImageURL     string   `json:"imageUrl"`
	DetailImages []string `json:"detailImages"`
}

func (p roomPayload) toModel() models.Room {
	images := make([]models.RoomImage, 0, len(p.DetailImages))
	for _, url := range p.DetailImages {
		images = append(images, models.RoomImage{ImageURL: url})
	}
	return models.Room{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Amenities:   p.Amenities,
		ImageURL:    p.ImageURL,
		Images:      images,
	}
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return 0, false
	}
	return uint(id), true
}

func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.Rooms.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("failed to list rooms: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	room, err := rc.Rooms.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		log.Printf("failed to load room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room := payload.toModel()
	if err := rc.Rooms.Create(c.Request.Context(), &room); err != nil {
		if isDuplicateKey(err) {
			utils.JSONError(c, http.StatusConflict, fmt.Sprintf("room %q already exists", room.Name))
			return
		}
		log.Printf("failed to create room: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room := payload.toModel()
	room.ID = id
	if err := rc.Rooms.Update(c.Request.Context(), &room); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		if isDuplicateKey(err) {
			utils.JSONError(c, http.StatusConflict, fmt.Sprintf("room %q already exists", room.Name))
			return
		}
		log.Printf("failed to update room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to update room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := rc.Rooms.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room %d not found", id))
			return
		}
		log.Printf("failed to delete room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
