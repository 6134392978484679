package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotel-booking/models"
)

// ConnectDatabase opens the MySQL connection, tunes the pool and applies
// migrations. The handle is returned, not stored globally.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, fmt.Errorf("resolve dsn: %w", err)
	}

	logLevel := gormlogger.Warn
	if cfg.Mode == "prod" {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies schema migrations for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedDatabase inserts a demo hotel, its room types and an admin account
// when the corresponding tables are empty. Dev convenience only.
func SeedDatabase(db *gorm.DB) {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Warn().Err(err).Msg("failed to hash default admin password")
		} else {
			admin := models.User{
				Email:          "admin@hotel.local",
				HashedPassword: string(hash),
				Role:           models.RoleAdmin,
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Warn().Err(err).Msg("failed to create default admin")
			} else {
				log.Info().Str("email", admin.Email).Msg("default admin seeded")
			}
		}
	}

	var hotelCount int64
	db.Model(&models.Hotel{}).Count(&hotelCount)
	if hotelCount > 0 {
		return
	}

	hotel := models.Hotel{
		Name:          "Altai Resort",
		Location:      "Altai Republic, Aya village",
		Services:      datatypes.JSON([]byte(`["Wi-Fi","Parking","Breakfast"]`)),
		RoomsQuantity: 25,
		ImageID:       1,
	}
	if err := db.Create(&hotel).Error; err != nil {
		log.Warn().Err(err).Msg("failed to seed demo hotel")
		return
	}

	rooms := []models.Room{
		{
			HotelID:  hotel.ID,
			Name:     "Standard",
			Price:    3700,
			Services: datatypes.JSON([]byte(`["Wi-Fi"]`)),
			Quantity: 15,
			ImageID:  2,
		},
		{
			HotelID:     hotel.ID,
			Name:        "Deluxe",
			Description: "Lake view, king bed",
			Price:       7300,
			Services:    datatypes.JSON([]byte(`["Wi-Fi","Air conditioning","Breakfast"]`)),
			Quantity:    10,
			ImageID:     3,
		},
	}
	if err := db.Create(&rooms).Error; err != nil {
		log.Warn().Err(err).Msg("failed to seed demo rooms")
		return
	}
	log.Info().Msg("demo hotel and rooms seeded")
}
