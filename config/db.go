package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"homestay-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "homestay_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// parent -> child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomImage{},
		&models.Review{},
		&models.Promotion{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase inserts a default admin account, a few rooms and one promotion
// when the corresponding tables are empty.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.User{}).Where("role_id = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				UserID:     "admin",
				FullName:   "Site Administrator",
				RoleID:     models.RoleAdmin,
				Password:   string(hash),
				Gmail:      "admin@homestay.local",
				IsVerified: true,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{
				Name:        "Garden View Homestay",
				Description: "Quiet double room looking out over the garden",
				Price:       550000,
				Amenities:   "wifi, air conditioning, breakfast",
				ImageURL:    "/uploads/rooms/garden-view.jpg",
				Images: []models.RoomImage{
					{ImageURL: "/uploads/rooms/garden-view-1.jpg"},
					{ImageURL: "/uploads/rooms/garden-view-2.jpg"},
				},
			},
			{
				Name:        "Riverside Bungalow",
				Description: "Standalone bungalow by the river, sleeps four",
				Price:       1200000,
				Amenities:   "wifi, kitchen, parking",
				ImageURL:    "/uploads/rooms/riverside.jpg",
			},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	var promoCount int64
	DB.Model(&models.Promotion{}).Count(&promoCount)
	if promoCount == 0 {
		now := time.Now()
		promo := models.Promotion{
			Code:           "WELCOME10",
			DiscountType:   models.DiscountPercent,
			DiscountAmount: 10,
			StartDate:      datatypes.Date(now),
			EndDate:        datatypes.Date(now.AddDate(0, 3, 0)),
			UsageLimit:     100,
		}
		if err := DB.Create(&promo).Error; err != nil {
			log.Printf("warning: failed to seed promotion: %v", err)
		} else {
			log.Println("Promotion seeded")
		}
	}
}
