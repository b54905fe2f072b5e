package handlers

import (
	"net/http"

	"github.com/Din0326/Ziin-Project/internal/store"
	"github.com/gin-gonic/gin"
)

// twitchSettingsJSON shapes a Twitch settings record for the dashboard.
func twitchSettingsJSON(settings store.TwitchSettings) gin.H {
	return gin.H{
		"twitchNotificationChannel": settings.NotificationChannel,
		"twitchNotificationText":    settings.NotificationText,
		"allStreamers":              settings.AllStreamers,
		"onlineStreamers":           settings.OnlineStreamers,
		"offlineStreamers":          settings.OfflineStreamers,
	}
}

// GetTwitchSettings returns the guild's Twitch notification settings.
func (h *SettingsHandler) GetTwitchSettings(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	settings, errLoad := h.store.TwitchSettings(c.Request.Context(), guildID)
	if errLoad != nil {
		respondStoreError(c, errLoad)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": twitchSettingsJSON(settings)})
}

// twitchSettingsRequest is the PUT body for Twitch settings. The streamer
// lists replace the stored lists wholesale.
type twitchSettingsRequest struct {
	NotificationChannel nullableString `json:"twitchNotificationChannel"`
	NotificationText    *string        `json:"twitchNotificationText"`
	AllStreamers        *[]string      `json:"allStreamers"`
	OnlineStreamers     *[]string      `json:"onlineStreamers"`
	OfflineStreamers    *[]string      `json:"offlineStreamers"`
}

// PutTwitchSettings validates and applies a partial Twitch-settings update.
func (h *SettingsHandler) PutTwitchSettings(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	var body twitchSettingsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	var patch store.TwitchSettingsPatch
	if body.NotificationChannel.Set {
		if !validChannelRef(body.NotificationChannel.Value) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid channel id"})
			return
		}
		patch.NotificationChannel = store.Some(body.NotificationChannel.Value)
	}
	if body.NotificationText != nil {
		patch.NotificationText = store.Some(*body.NotificationText)
	}
	if body.AllStreamers != nil {
		patch.AllStreamers = store.Some(*body.AllStreamers)
	}
	if body.OnlineStreamers != nil {
		patch.OnlineStreamers = store.Some(*body.OnlineStreamers)
	}
	if body.OfflineStreamers != nil {
		patch.OfflineStreamers = store.Some(*body.OfflineStreamers)
	}

	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no valid fields to update"})
		return
	}

	if errUpdate := h.store.UpdateTwitchSettings(c.Request.Context(), guildID, patch); errUpdate != nil {
		respondStoreError(c, errUpdate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
