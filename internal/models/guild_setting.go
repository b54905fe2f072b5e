package models

import "time"

// GuildSetting stores per-guild bot configuration.
type GuildSetting struct {
	GuildID string `gorm:"column:guild_id;type:varchar(32);primaryKey"` // Discord guild id (decimal string).

	Prefix   string  `gorm:"type:varchar(32);not null;default:'z!'"` // Command prefix.
	Timezone *string `gorm:"type:text"`                              // Normalized "UTC±H Region/City" label; NULL when unset.
	Language string  `gorm:"type:text;not null;default:'English'"`   // Display language.

	GuildLogID   *string `gorm:"column:guild_log_id;type:varchar(32)"`   // Guild-event log channel.
	MemberLogID  *string `gorm:"column:member_log_id;type:varchar(32)"`  // Member-event log channel.
	MessageLogID *string `gorm:"column:message_log_id;type:varchar(32)"` // Message-event log channel.
	VoiceLogID   *string `gorm:"column:voice_log_id;type:varchar(32)"`   // Voice-event log channel.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (GuildSetting) TableName() string { return "guild_settings" }
