package store

import (
	"context"
	"fmt"

	"github.com/Din0326/Ziin-Project/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// logEventDefaults lists every log-event key with its default state. The key
// casing matches what the bot process reads; the HTTP layer maps these to
// camelCase for clients.
var logEventDefaults = []struct {
	Key     string
	Enabled bool
}{
	{"guildUpdate", false},
	{"messageUpdate", true},
	{"messageDelete", true},
	{"RoleCreate", false},
	{"RoleDelete", false},
	{"RoleUpdate", false},
	{"MemberUpdate", true},
	{"MemberAdd", false},
	{"MemberKick", false},
	{"MemberUnban", false},
	{"MemberRemove", false},
	{"MemberNickUpdate", true},
	{"channelCreate", false},
	{"channelDelete", false},
	{"channelUpdate", false},
	{"voiceChannelJoin", false},
	{"voiceChannelLeave", false},
	{"voiceStateUpdate", false},
	{"voiceChannelSwitch", false},
	{"messageDeleteBulk", false},
}

// LogEventDefault returns the documented default for an event key.
func LogEventDefault(key string) (bool, bool) {
	for _, item := range logEventDefaults {
		if item.Key == key {
			return item.Enabled, true
		}
	}
	return false, false
}

// IsLogEventKey reports whether key is a known log-event name.
func IsLogEventKey(key string) bool {
	_, ok := LogEventDefault(key)
	return ok
}

// ensureLogSettings inserts default toggle rows for every event the guild
// does not have yet.
func (s *Store) ensureLogSettings(ctx context.Context, guildID string) error {
	rows := make([]models.LogSetting, 0, len(logEventDefaults))
	for _, item := range logEventDefaults {
		rows = append(rows, models.LogSetting{
			GuildID:  guildID,
			EventKey: item.Key,
			Enabled:  item.Enabled,
		})
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// LogSettings returns the guild's event toggles keyed by event name, creating
// default rows on first use. Events missing a row read as their default.
func (s *Store) LogSettings(ctx context.Context, guildID string) (map[string]bool, error) {
	if errEnsure := s.ensureLogSettings(ctx, guildID); errEnsure != nil {
		return nil, fmt.Errorf("store: ensure log settings: %w", errEnsure)
	}

	var rows []models.LogSetting
	if errFind := s.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("store: load log settings: %w", errFind)
	}

	result := make(map[string]bool, len(logEventDefaults))
	for _, item := range logEventDefaults {
		result[item.Key] = item.Enabled
	}
	for _, row := range rows {
		if _, known := result[row.EventKey]; known {
			result[row.EventKey] = row.Enabled
		}
	}
	return result, nil
}

// UpdateLogSettings upserts the provided toggles in one transaction. Unknown
// event keys are ignored. An empty update set is a no-op.
func (s *Store) UpdateLogSettings(ctx context.Context, guildID string, updates map[string]bool) error {
	filtered := make(map[string]bool, len(updates))
	for key, enabled := range updates {
		if IsLogEventKey(key) {
			filtered[key] = enabled
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, enabled := range filtered {
			row := models.LogSetting{GuildID: guildID, EventKey: key, Enabled: enabled}
			if errUpsert := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "guild_id"}, {Name: "event_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"enabled"}),
			}).Create(&row).Error; errUpsert != nil {
				return errUpsert
			}
		}
		return nil
	})
	if errTx != nil {
		return fmt.Errorf("store: update log settings: %w", errTx)
	}
	return nil
}
