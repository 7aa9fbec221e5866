package database

import (
	"log"

	"github.com/dersapp/dersapp-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(databaseURL string) *gorm.DB {
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.LessonPackage{},
		&models.StudentPackage{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seedLessonPackages(db); err != nil {
		log.Fatalf("Failed to seed lesson packages: %v", err)
	}

	return db
}

// seedLessonPackages inserts the default catalogue on first run.
func seedLessonPackages(db *gorm.DB) error {
	packages := []models.LessonPackage{
		{
			Name:          "Starter",
			Description:   "4 private lessons, 4 weeks of access",
			LessonCount:   4,
			DurationWeeks: 4,
			Price:         2000.00,
			IsActive:      true,
		},
		{
			Name:          "Standard",
			Description:   "8 private lessons, 8 weeks of access",
			LessonCount:   8,
			DurationWeeks: 8,
			Price:         3600.00,
			IsActive:      true,
		},
		{
			Name:          "Intensive",
			Description:   "16 private lessons, 12 weeks of access, priority scheduling",
			LessonCount:   16,
			DurationWeeks: 12,
			Price:         6400.00,
			IsActive:      true,
		},
	}

	for _, pkg := range packages {
		var count int64
		db.Model(&models.LessonPackage{}).Where("name = ?", pkg.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&pkg).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
