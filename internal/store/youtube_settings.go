package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Din0326/Ziin-Project/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// YouTubeSubscription is one tracked YouTube channel. The history lists are
// append-only logs of seen content ids; each non-empty "latest" id is
// guaranteed to appear in its history.
type YouTubeSubscription struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	VideoID       string   `json:"videoId"`
	StreamID      string   `json:"streamId"`
	ShortID       string   `json:"shortId"`
	VideoHistory  []string `json:"videoHistory"`
	StreamHistory []string `json:"streamHistory"`
	ShortHistory  []string `json:"shortHistory"`
}

// YouTubeSettings is the fully-populated YouTube notification record.
type YouTubeSettings struct {
	NotificationChannel *string
	NotificationText    string
	Subscriptions       []YouTubeSubscription
}

// YouTubeSettingsPatch is a partial YouTube-settings update. Subscriptions
// are replaced wholesale when set.
type YouTubeSettingsPatch struct {
	NotificationChannel Optional[*string]
	NotificationText    Optional[string]
	Subscriptions       Optional[[]YouTubeSubscription]
}

// Empty reports whether the patch carries no fields.
func (p YouTubeSettingsPatch) Empty() bool {
	return !p.NotificationChannel.Set && !p.NotificationText.Set && !p.Subscriptions.Set
}

// normalizeYouTubeSubscriptions drops entries without an id, de-duplicates by
// id keeping the first occurrence, and appends each latest id into its
// history list.
func normalizeYouTubeSubscriptions(values []YouTubeSubscription) []YouTubeSubscription {
	result := make([]YouTubeSubscription, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, value := range values {
		id := strings.TrimSpace(value.ID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		name := strings.TrimSpace(value.Name)
		if name == "" {
			name = id
		}
		videoID := strings.TrimSpace(value.VideoID)
		streamID := strings.TrimSpace(value.StreamID)
		shortID := strings.TrimSpace(value.ShortID)

		result = append(result, YouTubeSubscription{
			ID:            id,
			Name:          name,
			VideoID:       videoID,
			StreamID:      streamID,
			ShortID:       shortID,
			VideoHistory:  appendIfMissing(normalizeStringList(value.VideoHistory), videoID),
			StreamHistory: appendIfMissing(normalizeStringList(value.StreamHistory), streamID),
			ShortHistory:  appendIfMissing(normalizeStringList(value.ShortHistory), shortID),
		})
	}
	return result
}

func (s *Store) ensureYouTubeSettings(ctx context.Context, guildID string) error {
	row := models.YouTubeSetting{
		GuildID:          guildID,
		NotificationText: DefaultYouTubeNotificationText,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

// YouTubeSettings returns the guild's YouTube settings including its
// subscription list, creating defaults on first use.
func (s *Store) YouTubeSettings(ctx context.Context, guildID string) (YouTubeSettings, error) {
	if errEnsure := s.ensureYouTubeSettings(ctx, guildID); errEnsure != nil {
		return YouTubeSettings{}, fmt.Errorf("store: ensure youtube settings: %w", errEnsure)
	}

	var row models.YouTubeSetting
	if errFind := s.db.WithContext(ctx).First(&row, "guild_id = ?", guildID).Error; errFind != nil {
		return YouTubeSettings{}, fmt.Errorf("store: load youtube settings: %w", errFind)
	}

	var subRows []models.YouTubeSubscription
	if errFind := s.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("channel_id ASC").
		Find(&subRows).Error; errFind != nil {
		return YouTubeSettings{}, fmt.Errorf("store: load youtube subscriptions: %w", errFind)
	}

	text := row.NotificationText
	if strings.TrimSpace(text) == "" {
		text = DefaultYouTubeNotificationText
	}

	subs := make([]YouTubeSubscription, 0, len(subRows))
	for _, subRow := range subRows {
		name := strings.TrimSpace(subRow.Name)
		if name == "" {
			name = subRow.ChannelID
		}
		// Repair the latest-id/history invariant for rows written by older
		// builds that tracked only the latest pointer.
		subs = append(subs, YouTubeSubscription{
			ID:            subRow.ChannelID,
			Name:          name,
			VideoID:       subRow.VideoID,
			StreamID:      subRow.StreamID,
			ShortID:       subRow.ShortID,
			VideoHistory:  appendIfMissing(decodeStringList(subRow.VideoHistory), subRow.VideoID),
			StreamHistory: appendIfMissing(decodeStringList(subRow.StreamHistory), subRow.StreamID),
			ShortHistory:  appendIfMissing(decodeStringList(subRow.ShortHistory), subRow.ShortID),
		})
	}

	return YouTubeSettings{
		NotificationChannel: row.NotificationChannel,
		NotificationText:    text,
		Subscriptions:       subs,
	}, nil
}

// UpdateYouTubeSettings applies a partial update. A set subscription list
// replaces all stored subscriptions atomically.
func (s *Store) UpdateYouTubeSettings(ctx context.Context, guildID string, patch YouTubeSettingsPatch) error {
	if patch.Empty() {
		return nil
	}
	if errEnsure := s.ensureYouTubeSettings(ctx, guildID); errEnsure != nil {
		return fmt.Errorf("store: ensure youtube settings: %w", errEnsure)
	}

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if patch.NotificationChannel.Set {
			updates["notification_channel"] = normalizeChannelValue(patch.NotificationChannel.Value)
		}
		if patch.NotificationText.Set {
			text := patch.NotificationText.Value
			if strings.TrimSpace(text) == "" {
				text = DefaultYouTubeNotificationText
			}
			updates["notification_text"] = text
		}
		if len(updates) > 0 {
			if errUpdate := tx.Model(&models.YouTubeSetting{}).
				Where("guild_id = ?", guildID).
				Updates(updates).Error; errUpdate != nil {
				return errUpdate
			}
		}

		if patch.Subscriptions.Set {
			if errDelete := tx.Where("guild_id = ?", guildID).
				Delete(&models.YouTubeSubscription{}).Error; errDelete != nil {
				return errDelete
			}
			for _, sub := range normalizeYouTubeSubscriptions(patch.Subscriptions.Value) {
				row := models.YouTubeSubscription{
					GuildID:       guildID,
					ChannelID:     sub.ID,
					Name:          sub.Name,
					VideoID:       sub.VideoID,
					StreamID:      sub.StreamID,
					ShortID:       sub.ShortID,
					VideoHistory:  encodeStringList(sub.VideoHistory),
					StreamHistory: encodeStringList(sub.StreamHistory),
					ShortHistory:  encodeStringList(sub.ShortHistory),
				}
				if errCreate := tx.Create(&row).Error; errCreate != nil {
					return errCreate
				}
			}
		}
		return nil
	})
	if errTx != nil {
		return fmt.Errorf("store: update youtube settings: %w", errTx)
	}
	return nil
}
