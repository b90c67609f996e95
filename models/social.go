package models

import (
	"time"
)

// Reaction is a typed per-user reaction record. It is kept separate from
// Post.Likes and never reconciled with it.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;index"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	Type      string    `json:"type" gorm:"not null;size:20"` // like, love, laugh, wow, sad, angry
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"-" gorm:"foreignKey:PostID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// Notification is schema shape only; no endpoint reads or writes it.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	Type      string    `json:"type" gorm:"not null;size:20"` // like, comment, challenge
	Message   string    `json:"message" gorm:"not null"`
	RelatedID *string   `json:"related_id" gorm:"size:191"`
	Read      bool      `json:"read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
