package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"homestay-backend/controllers"
	"homestay-backend/middleware"
	"homestay-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers to their routes.
func SetupRouter(
	users *services.UserService,
	ac *controllers.AuthController,
	pwc *controllers.PasswordController,
	prc *controllers.ProfileController,
	rfc *controllers.RoomFilterController,
	rc *controllers.RoomController,
	pc *controllers.PromotionController,
	bc *controllers.BookingController,
	pgc *controllers.PageController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	r.LoadHTMLGlob("templates/*.html")
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.LoadSession(users))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Pages
	r.GET("/", pgc.Home)
	r.GET("/room/:id", pgc.RoomDetail)
	r.GET("/RoomFilterServlet", rfc.Filter)

	// Account flows
	r.GET("/login", ac.ShowLogin)
	r.POST("/login", middleware.RateLimitAuth(), ac.Login)
	r.POST("/register", middleware.RateLimitAuth(), ac.Register)
	r.GET("/logout", ac.Logout)

	r.GET("/forgotPassword", pwc.ShowForgot)
	r.POST("/forgotPassword", middleware.RateLimitAuth(), pwc.Forgot)
	r.GET("/resetPassword", pwc.ShowReset)
	r.POST("/resetPassword", pwc.Reset)

	authed := r.Group("", middleware.RequireLogin())
	{
		authed.GET("/profile", prc.Show)
		authed.POST("/updateProfile", prc.Update)
		authed.GET("/bookings", bc.List)
		authed.POST("/booking", bc.Create)
	}

	// Admin JSON API
	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoom)
			rooms.POST("", middleware.RequirePermission("roomManagement.create"), rc.CreateRoom)
			rooms.PUT("/:id", middleware.RequirePermission("roomManagement.edit"), rc.UpdateRoom)
			rooms.PATCH("/:id", middleware.RequirePermission("roomManagement.edit"), rc.UpdateRoom)
			rooms.DELETE("/:id", middleware.RequirePermission("roomManagement.delete"), rc.DeleteRoom)
		}

		promotions := api.Group("/promotions")
		{
			promotions.GET("/:code", pc.GetPromotion)
			promotions.POST("", middleware.RequirePermission("promotionManagement.create"), pc.CreatePromotion)
		}
	}

	return r
}
