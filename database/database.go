package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autogram-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Post{},
		&models.Comment{},
		&models.Car{},
		&models.Follow{},
		&models.Reaction{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Feed is always read newest-first.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for posts: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_comments_post_created ON comments(post_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for comments: %v\n", err)
	}

	// Car listings are scanned from the available set only.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_cars_available_category ON cars(available, category)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for cars: %v\n", err)
	}

	// Note: follows intentionally carries no unique (follower_id, following_id)
	// constraint; duplicate edges are permitted by the data model.

	return nil
}
