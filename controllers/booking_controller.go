package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"homestay-backend/middleware"
	"homestay-backend/models"
	"homestay-backend/services"
)

const bookingsPage = "bookings.html"

// BookingStore is the slice of the booking service the endpoints need.
type BookingStore interface {
	Create(ctx context.Context, in services.CreateBookingInput) (models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

type BookingController struct {
	Bookings BookingStore
}

func NewBookingController(bookings BookingStore) *BookingController {
	return &BookingController{Bookings: bookings}
}

// List renders the session user's bookings.
func (bc *BookingController) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	bookings, err := bc.Bookings.ListByUser(c.Request.Context(), user.UserID)
	if err != nil {
		log.Printf("failed to list bookings for %s: %v", user.UserID, err)
		c.HTML(http.StatusInternalServerError, bookingsPage, gin.H{
			"user":         user,
			"errorMessage": "System error, please try again later.",
		})
		return
	}
	c.HTML(http.StatusOK, bookingsPage, gin.H{"user": user, "bookings": bookings})
}

// Create handles the booking form. A promo code, when present, is validated
// against its window and redeemed together with the booking insert.
func (bc *BookingController) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	render := func(status int, attrs gin.H) {
		attrs["user"] = user
		if bookings, err := bc.Bookings.ListByUser(c.Request.Context(), user.UserID); err == nil {
			attrs["bookings"] = bookings
		}
		c.HTML(status, bookingsPage, attrs)
	}

	roomID, err := strconv.ParseUint(c.PostForm("roomId"), 10, 32)
	if err != nil {
		render(http.StatusBadRequest, gin.H{"errorMessage": "Please pick a room."})
		return
	}
	checkIn, err := time.Parse("2006-01-02", c.PostForm("checkIn"))
	if err != nil {
		render(http.StatusBadRequest, gin.H{"errorMessage": "Check-in date is not valid."})
		return
	}
	checkOut, err := time.Parse("2006-01-02", c.PostForm("checkOut"))
	if err != nil {
		render(http.StatusBadRequest, gin.H{"errorMessage": "Check-out date is not valid."})
		return
	}
	promoCode := strings.TrimSpace(c.PostForm("promoCode"))

	booking, err := bc.Bookings.Create(c.Request.Context(), services.CreateBookingInput{
		UserID:    user.UserID,
		RoomID:    uint(roomID),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		PromoCode: promoCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDates):
			render(http.StatusBadRequest, gin.H{"errorMessage": "Check-out must be after check-in."})
		case errors.Is(err, services.ErrRoomNotFound):
			render(http.StatusNotFound, gin.H{"errorMessage": "This room no longer exists."})
		case errors.Is(err, services.ErrPromotionNotFound):
			render(http.StatusBadRequest, gin.H{"errorMessage": "This promotion code is not valid right now."})
		case errors.Is(err, services.ErrPromotionExhausted):
			render(http.StatusConflict, gin.H{"errorMessage": "This promotion code has been used up."})
		default:
			log.Printf("failed to create booking: %v", err)
			render(http.StatusInternalServerError, gin.H{"errorMessage": "System error, please try again later."})
		}
		return
	}

	log.Printf("booking %d created for %s", booking.ID, user.UserID)
	c.Redirect(http.StatusFound, "/bookings")
}
