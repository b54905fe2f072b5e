package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Din0326/Ziin-Project/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TwitterSubscription is one tracked X account. The handle is lowercase with
// no leading @; the tweet history is an append-only log of seen tweet ids.
type TwitterSubscription struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TweetID      string   `json:"tweetId"`
	TweetHistory []string `json:"tweetHistory"`
}

// TwitterSettings is the fully-populated Twitter/X notification record.
type TwitterSettings struct {
	NotificationChannel *string
	NotificationText    string
	Subscriptions       []TwitterSubscription
}

// TwitterSettingsPatch is a partial Twitter-settings update. Subscriptions
// are replaced wholesale when set.
type TwitterSettingsPatch struct {
	NotificationChannel Optional[*string]
	NotificationText    Optional[string]
	Subscriptions       Optional[[]TwitterSubscription]
}

// Empty reports whether the patch carries no fields.
func (p TwitterSettingsPatch) Empty() bool {
	return !p.NotificationChannel.Set && !p.NotificationText.Set && !p.Subscriptions.Set
}

// NormalizeTwitterHandle lowercases a handle and strips whitespace and any
// leading @ signs. Returns "" for unusable input.
func NormalizeTwitterHandle(value string) string {
	handle := strings.ToLower(strings.TrimSpace(value))
	return strings.TrimLeft(handle, "@")
}

// normalizeTwitterSubscriptions drops entries without a usable handle,
// de-duplicates keeping the first occurrence, and appends each latest tweet
// id into the history list.
func normalizeTwitterSubscriptions(values []TwitterSubscription) []TwitterSubscription {
	result := make([]TwitterSubscription, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, value := range values {
		id := NormalizeTwitterHandle(value.ID)
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
		tweetID := strings.TrimSpace(value.TweetID)

		result = append(result, TwitterSubscription{
			ID:           id,
			Name:         name,
			TweetID:      tweetID,
			TweetHistory: appendIfMissing(normalizeStringList(value.TweetHistory), tweetID),
		})
	}
	return result
}

func (s *Store) ensureTwitterSettings(ctx context.Context, guildID string) error {
	row := models.TwitterSetting{
		GuildID:          guildID,
		NotificationText: DefaultTwitterNotificationText,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

// TwitterSettings returns the guild's Twitter settings including its
// subscription list, creating defaults on first use.
func (s *Store) TwitterSettings(ctx context.Context, guildID string) (TwitterSettings, error) {
	if errEnsure := s.ensureTwitterSettings(ctx, guildID); errEnsure != nil {
		return TwitterSettings{}, fmt.Errorf("store: ensure twitter settings: %w", errEnsure)
	}

	var row models.TwitterSetting
	if errFind := s.db.WithContext(ctx).First(&row, "guild_id = ?", guildID).Error; errFind != nil {
		return TwitterSettings{}, fmt.Errorf("store: load twitter settings: %w", errFind)
	}

	var subRows []models.TwitterSubscription
	if errFind := s.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("handle ASC").
		Find(&subRows).Error; errFind != nil {
		return TwitterSettings{}, fmt.Errorf("store: load twitter subscriptions: %w", errFind)
	}

	text := row.NotificationText
	if strings.TrimSpace(text) == "" {
		text = DefaultTwitterNotificationText
	}

	subs := make([]TwitterSubscription, 0, len(subRows))
	for _, subRow := range subRows {
		id := NormalizeTwitterHandle(subRow.Handle)
		name := strings.TrimSpace(subRow.Name)
		if name == "" {
			name = id
		}
		subs = append(subs, TwitterSubscription{
			ID:           id,
			Name:         name,
			TweetID:      subRow.TweetID,
			TweetHistory: appendIfMissing(decodeStringList(subRow.TweetHistory), subRow.TweetID),
		})
	}

	return TwitterSettings{
		NotificationChannel: row.NotificationChannel,
		NotificationText:    text,
		Subscriptions:       subs,
	}, nil
}

// UpdateTwitterSettings applies a partial update. A set subscription list
// replaces all stored subscriptions atomically.
func (s *Store) UpdateTwitterSettings(ctx context.Context, guildID string, patch TwitterSettingsPatch) error {
	if patch.Empty() {
		return nil
	}
	if errEnsure := s.ensureTwitterSettings(ctx, guildID); errEnsure != nil {
		return fmt.Errorf("store: ensure twitter settings: %w", errEnsure)
	}

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if patch.NotificationChannel.Set {
			updates["notification_channel"] = normalizeChannelValue(patch.NotificationChannel.Value)
		}
		if patch.NotificationText.Set {
			text := patch.NotificationText.Value
			if strings.TrimSpace(text) == "" {
				text = DefaultTwitterNotificationText
			}
			updates["notification_text"] = text
		}
		if len(updates) > 0 {
			if errUpdate := tx.Model(&models.TwitterSetting{}).
				Where("guild_id = ?", guildID).
				Updates(updates).Error; errUpdate != nil {
				return errUpdate
			}
		}

		if patch.Subscriptions.Set {
			if errDelete := tx.Where("guild_id = ?", guildID).
				Delete(&models.TwitterSubscription{}).Error; errDelete != nil {
				return errDelete
			}
			for _, sub := range normalizeTwitterSubscriptions(patch.Subscriptions.Value) {
				row := models.TwitterSubscription{
					GuildID:      guildID,
					Handle:       sub.ID,
					Name:         sub.Name,
					TweetID:      sub.TweetID,
					TweetHistory: encodeStringList(sub.TweetHistory),
				}
				if errCreate := tx.Create(&row).Error; errCreate != nil {
					return errCreate
				}
			}
		}
		return nil
	})
	if errTx != nil {
		return fmt.Errorf("store: update twitter settings: %w", errTx)
	}
	return nil
}
