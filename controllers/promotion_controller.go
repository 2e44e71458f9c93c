package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"homestay-backend/models"
	"homestay-backend/services"
	"homestay-backend/utils"
)

// PromotionStore is the slice of the promotion service the endpoints need.
type PromotionStore interface {
	GetActiveByCode(ctx context.Context, code string) (models.Promotion, error)
	Create(ctx context.Context, promo *models.Promotion) error
}

type PromotionController struct {
	Promotions PromotionStore
}

func NewPromotionController(promotions PromotionStore) *PromotionController {
	return &PromotionController{Promotions: promotions}
}

type promotionPayload struct {
	Code           string  `json:"code" binding:"required"`
	DiscountType   string  `json:"discountType" binding:"required,oneof=percent fixed"`
	DiscountAmount float64 `json:"discountAmount" binding:"required,gt=0"`
	StartDate      string  `json:"startDate" binding:"required"`
	EndDate        string  `json:"endDate" binding:"required"`
	UsageLimit     int     `json:"usageLimit" binding:"required,gt=0"`
}

// GetPromotion returns the promotion for a code, but only while the current
// date is inside its validity window. Outside the window the code behaves as
// if it did not exist.
func (pc *PromotionController) GetPromotion(c *gin.Context) {
	code := c.Param("code")

	promo, err := pc.Promotions.GetActiveByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrPromotionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "promotion not found or not active")
			return
		}
		log.Printf("failed to load promotion %q: %v", code, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load promotion")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, promo)
}

func (pc *PromotionController) CreatePromotion(c *gin.Context) {
	var payload promotionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	start, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", payload.EndDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		utils.JSONError(c, http.StatusBadRequest, "endDate must not be before startDate")
		return
	}

	promo := models.Promotion{
		Code:           payload.Code,
		DiscountType:   payload.DiscountType,
		DiscountAmount: payload.DiscountAmount,
		StartDate:      datatypes.Date(start),
		EndDate:        datatypes.Date(end),
		UsageLimit:     payload.UsageLimit,
	}
	if err := pc.Promotions.Create(c.Request.Context(), &promo); err != nil {
		if isDuplicateKey(err) {
			utils.JSONError(c, http.StatusConflict, "promotion code already exists")
			return
		}
		log.Printf("failed to create promotion: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create promotion")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, promo)
}
