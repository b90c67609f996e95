package models

import (
	"time"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Email     *string   `json:"email" gorm:"uniqueIndex;size:255"`
	Password  string    `json:"-" gorm:"size:255"`
	Provider  string    `json:"provider" gorm:"not null;size:20"` // password, anonymous
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:UserID"`
	Cars  []Car  `json:"cars,omitempty" gorm:"foreignKey:OwnerID"`
}

type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"not null;size:191;index"`
	FollowingID string    `json:"following_id" gorm:"not null;size:191;index"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `json:"follower,omitempty" gorm:"foreignKey:FollowerID"`
	Following User `json:"following,omitempty" gorm:"foreignKey:FollowingID"`
}

// UserProfile holds gamification state. It is created alongside the user and
// carried as schema only; no endpoint mutates it.
type UserProfile struct {
	ID                  uint        `json:"id" gorm:"primaryKey"`
	UserID              string      `json:"user_id" gorm:"not null;uniqueIndex;size:191"`
	Points              int         `json:"points" gorm:"default:0"`
	Badges              StringSlice `json:"badges" gorm:"type:json"`
	LastCheckIn         *time.Time  `json:"last_check_in"`
	ConsecutiveCheckIns int         `json:"consecutive_check_ins" gorm:"default:0"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
