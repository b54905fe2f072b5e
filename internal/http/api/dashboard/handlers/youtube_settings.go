package handlers

import (
	"net/http"

	"github.com/Din0326/Ziin-Project/internal/store"
	"github.com/gin-gonic/gin"
)

// youtubeSettingsJSON shapes a YouTube settings record for the dashboard.
func youtubeSettingsJSON(settings store.YouTubeSettings) gin.H {
	return gin.H{
		"youtubeNotificationChannel": settings.NotificationChannel,
		"youtubeNotificationText":    settings.NotificationText,
		"youtubers":                  settings.Subscriptions,
	}
}

// GetYouTubeSettings returns the guild's YouTube notification settings.
func (h *SettingsHandler) GetYouTubeSettings(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	settings, errLoad := h.store.YouTubeSettings(c.Request.Context(), guildID)
	if errLoad != nil {
		respondStoreError(c, errLoad)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": youtubeSettingsJSON(settings)})
}

// youtubeSettingsRequest is the PUT body for YouTube settings. The
// subscription list replaces the stored list wholesale.
type youtubeSettingsRequest struct {
	NotificationChannel nullableString               `json:"youtubeNotificationChannel"`
	NotificationText    *string                      `json:"youtubeNotificationText"`
	Subscriptions       *[]store.YouTubeSubscription `json:"youtubers"`
}

// PutYouTubeSettings validates and applies a partial YouTube-settings update.
func (h *SettingsHandler) PutYouTubeSettings(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	var body youtubeSettingsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	var patch store.YouTubeSettingsPatch
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
	if body.Subscriptions != nil {
		patch.Subscriptions = store.Some(*body.Subscriptions)
	}

	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no valid fields to update"})
		return
	}

	if errUpdate := h.store.UpdateYouTubeSettings(c.Request.Context(), guildID, patch); errUpdate != nil {
		respondStoreError(c, errUpdate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
