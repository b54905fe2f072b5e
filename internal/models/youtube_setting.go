package models

import (
	"time"

	"gorm.io/datatypes"
)

// YouTubeSetting stores a guild's YouTube notification configuration.
type YouTubeSetting struct {
	GuildID string `gorm:"column:guild_id;type:varchar(32);primaryKey"` // Discord guild id.

	NotificationChannel *string `gorm:"type:varchar(32)"`   // Channel receiving upload notices; NULL when unset.
	NotificationText    string  `gorm:"type:text;not null"` // Message template with {ytber}/{url} placeholders.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (YouTubeSetting) TableName() string { return "youtube_settings" }

// YouTubeSubscription is one tracked YouTube channel for a guild. The latest
// video/stream/short ids are mirrored into their history lists on write.
type YouTubeSubscription struct {
	GuildID   string `gorm:"column:guild_id;type:varchar(32);primaryKey"`   // Discord guild id.
	ChannelID string `gorm:"column:channel_id;type:varchar(64);primaryKey"` // YouTube channel id (UC…).

	Name     string `gorm:"type:text;not null"`                                    // Display name; falls back to the channel id.
	VideoID  string `gorm:"column:video_id;type:varchar(64);not null;default:''"`  // Latest seen video id.
	StreamID string `gorm:"column:stream_id;type:varchar(64);not null;default:''"` // Latest seen stream id.
	ShortID  string `gorm:"column:short_id;type:varchar(64);not null;default:''"`  // Latest seen short id.

	VideoHistory  datatypes.JSON `gorm:"not null;default:'[]'"` // Append-only log of seen video ids.
	StreamHistory datatypes.JSON `gorm:"not null;default:'[]'"` // Append-only log of seen stream ids.
	ShortHistory  datatypes.JSON `gorm:"not null;default:'[]'"` // Append-only log of seen short ids.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (YouTubeSubscription) TableName() string { return "youtube_subscriptions" }
