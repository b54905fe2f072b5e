package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Din0326/Ziin-Project/internal/discord"
	"github.com/Din0326/Ziin-Project/internal/perms"
	"github.com/Din0326/Ziin-Project/internal/store"
	"github.com/Din0326/Ziin-Project/internal/timezone"
	"github.com/gin-gonic/gin"
)

// maxPrefixLength caps the command prefix in characters; longer input is
// truncated rather than rejected.
const maxPrefixLength = 32

// guildDirectory is the slice of the Discord client the bootstrap aggregate
// needs.
type guildDirectory interface {
	GuildChannels(ctx context.Context, guildID string) ([]discord.Channel, error)
	GuildRoles(ctx context.Context, guildID string) ([]discord.Role, error)
}

// SettingsHandler serves the per-guild settings families.
type SettingsHandler struct {
	oracle    *perms.Oracle
	store     *store.Store
	directory guildDirectory
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(oracle *perms.Oracle, st *store.Store, directory guildDirectory) *SettingsHandler {
	return &SettingsHandler{oracle: oracle, store: st, directory: directory}
}

// guildSettingsJSON shapes a settings record for the dashboard.
func guildSettingsJSON(settings store.GuildSettings) gin.H {
	return gin.H{
		"prefix":       settings.Prefix,
		"timezone":     settings.Timezone,
		"language":     settings.Language,
		"guildLogId":   settings.GuildLogID,
		"memberLogId":  settings.MemberLogID,
		"messageLogId": settings.MessageLogID,
		"voiceLogId":   settings.VoiceLogID,
	}
}

// GetGuildSettings returns the guild's core settings.
func (h *SettingsHandler) GetGuildSettings(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	settings, errLoad := h.store.GuildSettings(c.Request.Context(), guildID)
	if errLoad != nil {
		respondStoreError(c, errLoad)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": guildSettingsJSON(settings)})
}

// serverSettingsRequest is the PUT body for core settings. Channel ids and
// the timezone accept explicit null to clear the value.
type serverSettingsRequest struct {
	Prefix       *string        `json:"prefix"`
	Timezone     nullableString `json:"timezone"`
	Language     *string        `json:"language"`
	GuildLogID   nullableString `json:"guildLogId"`
	MemberLogID  nullableString `json:"memberLogId"`
	MessageLogID nullableString `json:"messageLogId"`
	VoiceLogID   nullableString `json:"voiceLogId"`
}

// PutGuildSettings validates and applies a partial core-settings update.
func (h *SettingsHandler) PutGuildSettings(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	var body serverSettingsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	var patch store.GuildSettingsPatch
	if body.Prefix != nil {
		prefix := strings.TrimSpace(*body.Prefix)
		if prefix == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid prefix"})
			return
		}
		if runes := []rune(prefix); len(runes) > maxPrefixLength {
			prefix = string(runes[:maxPrefixLength])
		}
		patch.Prefix = store.Some(prefix)
	}
	if body.Timezone.Set {
		if body.Timezone.Value == nil {
			patch.Timezone = store.Some[*string](nil)
		} else {
			label, errNormalize := timezone.Normalize(*body.Timezone.Value, time.Now())
			if errNormalize != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid timezone"})
				return
			}
			patch.Timezone = store.Some(&label)
		}
	}
	if body.Language != nil {
		language := strings.TrimSpace(*body.Language)
		if language == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid language"})
			return
		}
		patch.Language = store.Some(language)
	}

	channelRefs := []struct {
		field  nullableString
		target *store.Optional[*string]
	}{
		{body.GuildLogID, &patch.GuildLogID},
		{body.MemberLogID, &patch.MemberLogID},
		{body.MessageLogID, &patch.MessageLogID},
		{body.VoiceLogID, &patch.VoiceLogID},
	}
	for _, ref := range channelRefs {
		if !ref.field.Set {
			continue
		}
		if !validChannelRef(ref.field.Value) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid channel id"})
			return
		}
		*ref.target = store.Some(ref.field.Value)
	}

	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no valid fields to update"})
		return
	}

	if errUpdate := h.store.UpdateGuildSettings(c.Request.Context(), guildID, patch); errUpdate != nil {
		respondStoreError(c, errUpdate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
