package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"homestay-backend/config"
	"homestay-backend/controllers"
	"homestay-backend/routes"
	"homestay-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot issue sessions.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	log.Println("✅ Database connection established and migrations applied.")

	// Services
	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db)
	promotionService := services.NewPromotionService(db)
	bookingService := services.NewBookingService(db)

	// Controllers
	authController := controllers.NewAuthController(userService)
	passwordController := controllers.NewPasswordController(userService)
	profileController := controllers.NewProfileController(userService)
	roomFilterController := controllers.NewRoomFilterController(roomService)
	roomController := controllers.NewRoomController(roomService)
	promotionController := controllers.NewPromotionController(promotionService)
	bookingController := controllers.NewBookingController(bookingService)
	pageController := controllers.NewPageController(roomService)

	router := routes.SetupRouter(
		userService,
		authController,
		passwordController,
		profileController,
		roomFilterController,
		roomController,
		promotionController,
		bookingController,
		pageController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
