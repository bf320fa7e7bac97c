package models

import (
	"github.com/google/uuid"
	"time"
)

// Holiday is a named non-working date, used for workable-day counts in reports.
type Holiday struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex"`
	Year      int       `json:"year" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
