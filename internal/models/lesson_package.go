package models

import (
	"time"
)

type LessonPackage struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	LessonCount   int       `json:"lesson_count" gorm:"not null"`
	DurationWeeks int       `json:"duration_weeks" gorm:"not null"`
	Price         float64   `json:"price" gorm:"not null"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
