package models

import (
	"time"

	"gorm.io/datatypes"
)

// TwitterSetting stores a guild's Twitter/X notification configuration.
type TwitterSetting struct {
	GuildID string `gorm:"column:guild_id;type:varchar(32);primaryKey"` // Discord guild id.

	NotificationChannel *string `gorm:"type:varchar(32)"`   // Channel receiving tweet notices; NULL when unset.
	NotificationText    string  `gorm:"type:text;not null"` // Message template with {xuser}/{url} placeholders.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (TwitterSetting) TableName() string { return "twitter_settings" }

// TwitterSubscription is one tracked X account for a guild. Handles are stored
// lowercase without a leading @.
type TwitterSubscription struct {
	GuildID string `gorm:"column:guild_id;type:varchar(32);primaryKey"` // Discord guild id.
	Handle  string `gorm:"column:handle;type:varchar(32);primaryKey"`   // Account handle, lowercase, no @.

	Name    string `gorm:"type:text;not null"`                                   // Display name; falls back to the handle.
	TweetID string `gorm:"column:tweet_id;type:varchar(64);not null;default:''"` // Latest seen tweet id.

	TweetHistory datatypes.JSON `gorm:"not null;default:'[]'"` // Append-only log of seen tweet ids.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (TwitterSubscription) TableName() string { return "twitter_subscriptions" }
