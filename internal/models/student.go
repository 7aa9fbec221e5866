package models

import (
	"time"
)

// Student is the learner profile behind a user account. Purchases are
// tracked against the student, payments against the account.
type Student struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"unique;not null"`
	GradeLevel string    `json:"grade_level"`
	City       string    `json:"city"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
