package controllers

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"homestay-backend/models"
)

const itemsPerPage = 6

// RoomFilterer is the slice of the room service the filter endpoint needs.
type RoomFilterer interface {
	Filter(ctx context.Context, name string, minPrice, maxPrice float64, amenities string) ([]models.Room, error)
}

/// RoomFilterController serves /RoomFilterServlet: an HTML fragment of up to
// six matching rooms, or the plain-text total when getTotal=true.
type RoomFilterController struct {
	Rooms RoomFilterer
}

func NewRoomFilterController(rooms RoomFilterer) *RoomFilterController {
	return &RoomFilterController{Rooms: rooms}
}

// roomCard is the preformatted view model the fragment template renders.
type roomCard struct {
	ID        uint
	Name      string
	ImageURL  string
	PriceText string
	Amenities string
	Rating    string
}

// parsePrice turns an optional form value into a price bound. An empty value
// falls back to def; a non-numeric one is a validation error rather than a
// propagated parse failure.
func parsePrice(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid price", raw)
	}
	return v, nil
}

// parsePage keeps the original tolerance: anything unparseable means page 1.
func parsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

// paginate clamps page into [1, totalPages] and returns the slice for that
// page. Zero rooms yield an empty slice and effective page 1.
func paginate(rooms []models.Room, page int) ([]models.Room, int) {
	total := len(rooms)
	totalPages := int(math.Ceil(float64(total) / float64(itemsPerPage)))
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if total == 0 {
		return rooms, 1
	}

	start := (page - 1) * itemsPerPage
	end := start + itemsPerPage
	if end > total {
		end = total
	}
	return rooms[start:end], page
}

// formatVND renders a price as a whole number with comma grouping.
func formatVND(price float64) string {
	n := int64(math.Round(price))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return sign + strings.Join(parts, ",")
}

func toRoomCard(room models.Room) roomCard {
	amenities := room.Amenities
	if amenities == "" {
		amenities = "No amenities listed"
	}
	return roomCard{
		ID:        room.ID,
		Name:      room.Name,
		ImageURL:  room.ImageURL,
		PriceText: formatVND(room.Price) + " VND",
		Amenities: amenities,
		Rating:    fmt.Sprintf("%.1f/5 (%d reviews)", room.AverageRating, room.ReviewCount),
	}
}

// Filter handles GET /RoomFilterServlet.
func (rc *RoomFilterController) Filter(c *gin.Context) {
	searchName := c.Query("searchName")
	amenities := c.Query("amenities")

	minPrice, err := parsePrice(c.Query("minPrice"), 0)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid minimum price: %s", err.Error())
		return
	}
	maxPrice, err := parsePrice(c.Query("maxPrice"), math.MaxFloat64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid maximum price: %s", err.Error())
		return
	}
	page := parsePage(c.Query("page"))

	rooms, err := rc.Rooms.Filter(c.Request.Context(), searchName, minPrice, maxPrice, amenities)
	if err != nil {
		log.Printf("room filter query failed: %v", err)
		c.String(http.StatusInternalServerError, "<p>An error occurred while loading the room list.</p>")
		return
	}

	// Total count for client-side pagination, independent of page.
	if c.Query("getTotal") == "true" {
		c.String(http.StatusOK, strconv.Itoa(len(rooms)))
		return
	}

	pageRooms, _ := paginate(rooms, page)
	cards := make([]roomCard, 0, len(pageRooms))
	for _, room := range pageRooms {
		cards = append(cards, toRoomCard(room))
	}

	c.HTML(http.StatusOK, "room-fragment.html", gin.H{"rooms": cards})
}
