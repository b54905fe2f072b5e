package handlers

import (
	"net/http"

	"github.com/Din0326/Ziin-Project/internal/store"
	"github.com/gin-gonic/gin"
)

// twitterSettingsJSON shapes a Twitter settings record for the dashboard.
func twitterSettingsJSON(settings store.TwitterSettings) gin.H {
	return gin.H{
		"twitterNotificationChannel": settings.NotificationChannel,
		"twitterNotificationText":    settings.NotificationText,
		"xusers":                     settings.Subscriptions,
	}
}

// GetTwitterSettings returns the guild's Twitter/X notification settings.
func (h *SettingsHandler) GetTwitterSettings(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	settings, errLoad := h.store.TwitterSettings(c.Request.Context(), guildID)
	if errLoad != nil {
		respondStoreError(c, errLoad)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": twitterSettingsJSON(settings)})
}

// twitterSettingsRequest is the PUT body for Twitter settings. The
// subscription list replaces the stored list wholesale.
type twitterSettingsRequest struct {
	NotificationChannel nullableString               `json:"twitterNotificationChannel"`
	NotificationText    *string                      `json:"twitterNotificationText"`
	Subscriptions       *[]store.TwitterSubscription `json:"xusers"`
}

// PutTwitterSettings validates and applies a partial Twitter-settings update.
func (h *SettingsHandler) PutTwitterSettings(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	var body twitterSettingsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	var patch store.TwitterSettingsPatch
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

	if errUpdate := h.store.UpdateTwitterSettings(c.Request.Context(), guildID, patch); errUpdate != nil {
		respondStoreError(c, errUpdate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
