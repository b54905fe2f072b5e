package db

import (
	"fmt"

	"github.com/Din0326/Ziin-Project/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the settings schema. Safe to run repeatedly.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}

	if errAuto := conn.AutoMigrate(
		&models.GuildSetting{},
		&models.LogSetting{},
		&models.TwitchSetting{},
		&models.YouTubeSetting{},
		&models.YouTubeSubscription{},
		&models.TwitterSetting{},
		&models.TwitterSubscription{},
	); errAuto != nil {
		return fmt.Errorf("db: automigrate: %w", errAuto)
	}

	// History columns arrived after the subscription tables shipped; databases
	// created by earlier builds lack them, and AutoMigrate does not touch
	// tables it did not create.
	historyColumns := []struct {
		model  any
		table  string
		column string
	}{
		{&models.YouTubeSubscription{}, "youtube_subscriptions", "video_history"},
		{&models.YouTubeSubscription{}, "youtube_subscriptions", "stream_history"},
		{&models.YouTubeSubscription{}, "youtube_subscriptions", "short_history"},
		{&models.TwitterSubscription{}, "twitter_subscriptions", "tweet_history"},
	}
	for _, item := range historyColumns {
		if conn.Migrator().HasColumn(item.model, item.column) {
			continue
		}
		if errAdd := conn.Migrator().AddColumn(item.model, item.column); errAdd != nil {
			return fmt.Errorf("db: add column %s.%s: %w", item.table, item.column, errAdd)
		}
	}

	return nil
}
