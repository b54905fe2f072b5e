package models

import "time"

// LogSetting stores one log-event toggle for a guild. Absent rows mean the
// event's documented default, not false.
type LogSetting struct {
	GuildID  string `gorm:"column:guild_id;type:varchar(32);primaryKey"`  // Discord guild id.
	EventKey string `gorm:"column:event_key;type:varchar(64);primaryKey"` // Log event name, e.g. "messageDelete".

	Enabled bool `gorm:"not null;default:false"` // Whether the event is logged.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (LogSetting) TableName() string { return "log_settings" }
