package store

import (
	"context"
	"fmt"

	"github.com/Din0326/Ziin-Project/internal/models"
	"gorm.io/gorm/clause"
)

// GuildSettings is the fully-populated guild configuration record.
type GuildSettings struct {
	Prefix       string
	Timezone     *string
	Language     string
	GuildLogID   *string
	MemberLogID  *string
	MessageLogID *string
	VoiceLogID   *string
}

// GuildSettingsPatch is a partial guild-settings update. Unset fields keep
// their persisted value.
type GuildSettingsPatch struct {
	Prefix       Optional[string]
	Timezone     Optional[*string]
	Language     Optional[string]
	GuildLogID   Optional[*string]
	MemberLogID  Optional[*string]
	MessageLogID Optional[*string]
	VoiceLogID   Optional[*string]
}

// Empty reports whether the patch carries no fields.
func (p GuildSettingsPatch) Empty() bool {
	return !p.Prefix.Set && !p.Timezone.Set && !p.Language.Set &&
		!p.GuildLogID.Set && !p.MemberLogID.Set && !p.MessageLogID.Set && !p.VoiceLogID.Set
}

// ensureGuildSettings inserts the default row if the guild is unseen.
// Insert-if-absent keeps concurrent first-reads conflict-free.
func (s *Store) ensureGuildSettings(ctx context.Context, guildID string) error {
	row := models.GuildSetting{
		GuildID:  guildID,
		Prefix:   DefaultPrefix,
		Language: DefaultLanguage,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

// GuildSettings returns the guild's settings, creating defaults on first use.
func (s *Store) GuildSettings(ctx context.Context, guildID string) (GuildSettings, error) {
	if errEnsure := s.ensureGuildSettings(ctx, guildID); errEnsure != nil {
		return GuildSettings{}, fmt.Errorf("store: ensure guild settings: %w", errEnsure)
	}

	var row models.GuildSetting
	if errFind := s.db.WithContext(ctx).First(&row, "guild_id = ?", guildID).Error; errFind != nil {
		return GuildSettings{}, fmt.Errorf("store: load guild settings: %w", errFind)
	}

	return GuildSettings{
		Prefix:       row.Prefix,
		Timezone:     row.Timezone,
		Language:     row.Language,
		GuildLogID:   row.GuildLogID,
		MemberLogID:  row.MemberLogID,
		MessageLogID: row.MessageLogID,
		VoiceLogID:   row.VoiceLogID,
	}, nil
}

// UpdateGuildSettings applies a partial update. An empty patch is a no-op.
func (s *Store) UpdateGuildSettings(ctx context.Context, guildID string, patch GuildSettingsPatch) error {
	if patch.Empty() {
		return nil
	}
	if errEnsure := s.ensureGuildSettings(ctx, guildID); errEnsure != nil {
		return fmt.Errorf("store: ensure guild settings: %w", errEnsure)
	}

	updates := map[string]any{}
	if patch.Prefix.Set {
		updates["prefix"] = patch.Prefix.Value
	}
	if patch.Timezone.Set {
		updates["timezone"] = patch.Timezone.Value
	}
	if patch.Language.Set {
		updates["language"] = patch.Language.Value
	}
	if patch.GuildLogID.Set {
		updates["guild_log_id"] = patch.GuildLogID.Value
	}
	if patch.MemberLogID.Set {
		updates["member_log_id"] = patch.MemberLogID.Value
	}
	if patch.MessageLogID.Set {
		updates["message_log_id"] = patch.MessageLogID.Value
	}
	if patch.VoiceLogID.Set {
		updates["voice_log_id"] = patch.VoiceLogID.Value
	}

	if errUpdate := s.db.WithContext(ctx).
		Model(&models.GuildSetting{}).
		Where("guild_id = ?", guildID).
		Updates(updates).Error; errUpdate != nil {
		return fmt.Errorf("store: update guild settings: %w", errUpdate)
	}
	return nil
}
