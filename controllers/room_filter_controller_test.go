package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestay-backend/models"
)

func sampleRooms(n int) []models.Room {
	rooms := make([]models.Room, 0, n)
	for i := 1; i <= n; i++ {
		rooms = append(rooms, models.Room{
			ID:    uint(i),
			Name:  fmt.Sprintf("Room %d", i),
			Price: float64(100000 * i),
		})
	}
	return rooms
}

func TestParsePrice(t *testing.T) {
	v, err := parsePrice("", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = parsePrice("", math.MaxFloat64)
	require.NoError(t, err)
	assert.Equal(t, math.MaxFloat64, v)

	v, err = parsePrice("250000", 0)
	require.NoError(t, err)
	assert.Equal(t, 250000.0, v)

	_, err = parsePrice("cheap", 0)
	assert.Error(t, err)
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(""))
	assert.Equal(t, 1, parsePage("abc"))
	assert.Equal(t, 3, parsePage("3"))
	assert.Equal(t, -2, parsePage("-2")) // clamping happens in paginate
}

func TestPaginateClampsPage(t *testing.T) {
	rooms := sampleRooms(20)

	// Page 0 with 20 results clamps to page 1: rooms 1-6.
	pageRooms, page := paginate(rooms, 0)
	assert.Equal(t, 1, page)
	require.Len(t, pageRooms, itemsPerPage)
	assert.Equal(t, uint(1), pageRooms[0].ID)
	assert.Equal(t, uint(6), pageRooms[5].ID)

	// Past the end clamps to the last page (4 pages of 6,6,6,2).
	pageRooms, page = paginate(rooms, 99)
	assert.Equal(t, 4, page)
	require.Len(t, pageRooms, 2)
	assert.Equal(t, uint(19), pageRooms[0].ID)

	// Middle page intact.
	pageRooms, page = paginate(rooms, 2)
	assert.Equal(t, 2, page)
	require.Len(t, pageRooms, itemsPerPage)
	assert.Equal(t, uint(7), pageRooms[0].ID)
}

func TestPaginateEmpty(t *testing.T) {
	pageRooms, page := paginate(nil, 5)
	assert.Empty(t, pageRooms)
	assert.Equal(t, 1, page)
}

func TestFormatVND(t *testing.T) {
	assert.Equal(t, "0", formatVND(0))
	assert.Equal(t, "950", formatVND(950))
	assert.Equal(t, "550,000", formatVND(550000))
	assert.Equal(t, "1,200,000", formatVND(1200000))
	assert.Equal(t, "-5,000", formatVND(-5000))
}

func performFilter(t *testing.T, rooms *fakeRoomFilterer, query string) *httptest.ResponseRecorder {
	t.Helper()
	r := newTestRouter(t)
	r.GET("/RoomFilterServlet", NewRoomFilterController(rooms).Filter)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/RoomFilterServlet"+query, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestFilterGetTotalIgnoresPage(t *testing.T) {
	rooms := &fakeRoomFilterer{rooms: sampleRooms(20)}

	for _, page := range []string{"", "1", "3", "99"} {
		w := performFilter(t, rooms, "?getTotal=true&page="+page)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "20", w.Body.String())
	}
}

func TestFilterRendersFragment(t *testing.T) {
	rooms := &fakeRoomFilterer{rooms: sampleRooms(8)}

	w := performFilter(t, rooms, "?page=2")
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Room 7")
	assert.Contains(t, body, "Room 8")
	assert.NotContains(t, body, "Room 6")
	assert.Equal(t, 2, strings.Count(body, "room-item"))
}

func TestFilterEmptyResultIsEmptyFragment(t *testing.T) {
	rooms := &fakeRoomFilterer{}

	w := performFilter(t, rooms, "?searchName=nothing")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "room-item")
}

func TestFilterDefaultsAndParams(t *testing.T) {
	rooms := &fakeRoomFilterer{}

	performFilter(t, rooms, "?searchName=garden&amenities=wifi")
	assert.Equal(t, "garden", rooms.gotName)
	assert.Equal(t, "wifi", rooms.gotAmenities)
	assert.Equal(t, 0.0, rooms.gotMin)
	assert.Equal(t, math.MaxFloat64, rooms.gotMax)

	performFilter(t, rooms, "?minPrice=100000&maxPrice=900000")
	assert.Equal(t, 100000.0, rooms.gotMin)
	assert.Equal(t, 900000.0, rooms.gotMax)
}

func TestFilterRejectsMalformedPrice(t *testing.T) {
	rooms := &fakeRoomFilterer{rooms: sampleRooms(3)}

	w := performFilter(t, rooms, "?minPrice=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid minimum price")

	w = performFilter(t, rooms, "?maxPrice=1e")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid maximum price")
}

func TestFilterQueryFailure(t *testing.T) {
	rooms := &fakeRoomFilterer{err: errors.New("connection refused")}

	w := performFilter(t, rooms, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error occurred")
}
