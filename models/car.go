package models

import (
	"time"
)

type Car struct {
	ID          string      `json:"id" gorm:"primaryKey;size:191"`
	OwnerID     string      `json:"owner_id" gorm:"not null;size:191;index"`
	Make        string      `json:"make" gorm:"not null;size:100"`
	Model       string      `json:"model" gorm:"not null;size:100"`
	Year        int         `json:"year" gorm:"not null"`
	Price       float64     `json:"price" gorm:"not null"`
	Latitude    float64     `json:"lat" gorm:"not null"`
	Longitude   float64     `json:"lng" gorm:"not null"`
	Description string      `json:"description"`
	ImageIDs    StringSlice `json:"image_ids" gorm:"type:json"`
	Category    string      `json:"category" gorm:"size:100;index"`
	Features    StringSlice `json:"features" gorm:"type:json"`
	Available   bool        `json:"available" gorm:"index"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}
