package models

import (
	"time"
)

type Post struct {
	ID        string      `json:"id" gorm:"primaryKey;size:191"`
	UserID    string      `json:"user_id" gorm:"not null;size:191;index"`
	ImageID   string      `json:"image_id" gorm:"not null;size:191"`
	Caption   string      `json:"caption"`
	Tags      StringSlice `json:"tags" gorm:"type:json"`
	Likes     StringSlice `json:"likes" gorm:"type:json"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID"`
}

// FeedComment is a comment annotated with its author's display name.
type FeedComment struct {
	Comment
	Username string `json:"username"`
}

// FeedPost is the denormalized view of a post assembled at read time: owner
// name, resolved image URL and comments are joined in, never stored.
type FeedPost struct {
	Post
	Username string        `json:"username"`
	ImageURL string        `json:"image_url"`
	Comments []FeedComment `json:"comments"`
}
