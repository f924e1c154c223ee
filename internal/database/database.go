package database

import (
	"fmt"

	"github.com/YannisFouzi/blind-test-sub001/internal/config"
	"github.com/YannisFouzi/blind-test-sub001/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	logrus.Info("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Host{},
		&models.Universe{},
		&models.Work{},
		&models.Song{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to auto-migrate")
	}
	logrus.Info("database migrated")
}
