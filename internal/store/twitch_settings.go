package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Din0326/Ziin-Project/internal/models"
	"gorm.io/gorm/clause"
)

// TwitchSettings is the fully-populated Twitch notification record. The
// online/offline lists are bot-derived state and pass through unchanged.
type TwitchSettings struct {
	NotificationChannel *string
	NotificationText    string
	AllStreamers        []string
	OnlineStreamers     []string
	OfflineStreamers    []string
}

// TwitchSettingsPatch is a partial Twitch-settings update. List fields are
// replaced wholesale when set.
type TwitchSettingsPatch struct {
	NotificationChannel Optional[*string]
	NotificationText    Optional[string]
	AllStreamers        Optional[[]string]
	OnlineStreamers     Optional[[]string]
	OfflineStreamers    Optional[[]string]
}

// Empty reports whether the patch carries no fields.
func (p TwitchSettingsPatch) Empty() bool {
	return !p.NotificationChannel.Set && !p.NotificationText.Set &&
		!p.AllStreamers.Set && !p.OnlineStreamers.Set && !p.OfflineStreamers.Set
}

func (s *Store) ensureTwitchSettings(ctx context.Context, guildID string) error {
	row := models.TwitchSetting{
		GuildID:          guildID,
		NotificationText: DefaultTwitchNotificationText,
		AllStreamers:     encodeStringList(nil),
		OnlineStreamers:  encodeStringList(nil),
		OfflineStreamers: encodeStringList(nil),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

// TwitchSettings returns the guild's Twitch settings, creating defaults on
// first use.
func (s *Store) TwitchSettings(ctx context.Context, guildID string) (TwitchSettings, error) {
	if errEnsure := s.ensureTwitchSettings(ctx, guildID); errEnsure != nil {
		return TwitchSettings{}, fmt.Errorf("store: ensure twitch settings: %w", errEnsure)
	}

	var row models.TwitchSetting
	if errFind := s.db.WithContext(ctx).First(&row, "guild_id = ?", guildID).Error; errFind != nil {
		return TwitchSettings{}, fmt.Errorf("store: load twitch settings: %w", errFind)
	}

	text := row.NotificationText
	if strings.TrimSpace(text) == "" {
		text = DefaultTwitchNotificationText
	}
	return TwitchSettings{
		NotificationChannel: row.NotificationChannel,
		NotificationText:    text,
		AllStreamers:        decodeStringList(row.AllStreamers),
		OnlineStreamers:     decodeStringList(row.OnlineStreamers),
		OfflineStreamers:    decodeStringList(row.OfflineStreamers),
	}, nil
}

// UpdateTwitchSettings applies a partial update. Streamer lists are trimmed
// and de-duplicated; an empty template resets to the built-in default.
func (s *Store) UpdateTwitchSettings(ctx context.Context, guildID string, patch TwitchSettingsPatch) error {
	if patch.Empty() {
		return nil
	}
	if errEnsure := s.ensureTwitchSettings(ctx, guildID); errEnsure != nil {
		return fmt.Errorf("store: ensure twitch settings: %w", errEnsure)
	}

	updates := map[string]any{}
	if patch.NotificationChannel.Set {
		updates["notification_channel"] = normalizeChannelValue(patch.NotificationChannel.Value)
	}
	if patch.NotificationText.Set {
		text := patch.NotificationText.Value
		if strings.TrimSpace(text) == "" {
			text = DefaultTwitchNotificationText
		}
		updates["notification_text"] = text
	}
	if patch.AllStreamers.Set {
		updates["all_streamers"] = encodeStringList(normalizeStreamerList(patch.AllStreamers.Value))
	}
	if patch.OnlineStreamers.Set {
		updates["online_streamers"] = encodeStringList(normalizeStreamerList(patch.OnlineStreamers.Value))
	}
	if patch.OfflineStreamers.Set {
		updates["offline_streamers"] = encodeStringList(normalizeStreamerList(patch.OfflineStreamers.Value))
	}

	if errUpdate := s.db.WithContext(ctx).
		Model(&models.TwitchSetting{}).
		Where("guild_id = ?", guildID).
		Updates(updates).Error; errUpdate != nil {
		return fmt.Errorf("store: update twitch settings: %w", errUpdate)
	}
	return nil
}

// normalizeChannelValue maps an empty or whitespace channel id to NULL.
func normalizeChannelValue(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
