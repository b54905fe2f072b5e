package models

import (
	"time"

	"gorm.io/datatypes"
)

// TwitchSetting stores a guild's Twitch notification configuration.
type TwitchSetting struct {
	GuildID string `gorm:"column:guild_id;type:varchar(32);primaryKey"` // Discord guild id.

	NotificationChannel *string        `gorm:"type:varchar(32)"`      // Channel receiving go-live notices; NULL when unset.
	NotificationText    string         `gorm:"type:text;not null"`    // Message template with {streamer}/{url} placeholders.
	AllStreamers        datatypes.JSON `gorm:"not null;default:'[]'"` // Tracked Twitch usernames.
	OnlineStreamers     datatypes.JSON `gorm:"not null;default:'[]'"` // Bot-side live state, passed through.
	OfflineStreamers    datatypes.JSON `gorm:"not null;default:'[]'"` // Bot-side offline state, passed through.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (TwitchSetting) TableName() string { return "twitch_settings" }
