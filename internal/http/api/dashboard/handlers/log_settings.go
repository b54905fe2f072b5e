package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// logFieldMap pairs the camelCase keys the dashboard speaks with the stored
// event names the bot process reads. channelUpdate exists in storage but has
// no dashboard toggle.
var logFieldMap = []struct {
	External string
	Stored   string
}{
	{"memberAdd", "MemberAdd"},
	{"memberKick", "MemberKick"},
	{"memberNickUpdate", "MemberNickUpdate"},
	{"memberRemove", "MemberRemove"},
	{"memberUnban", "MemberUnban"},
	{"memberUpdate", "MemberUpdate"},
	{"roleCreate", "RoleCreate"},
	{"roleDelete", "RoleDelete"},
	{"roleUpdate", "RoleUpdate"},
	{"channelCreate", "channelCreate"},
	{"channelDelete", "channelDelete"},
	{"guildUpdate", "guildUpdate"},
	{"messageDelete", "messageDelete"},
	{"messageDeleteBulk", "messageDeleteBulk"},
	{"messageUpdate", "messageUpdate"},
	{"voiceChannelJoin", "voiceChannelJoin"},
	{"voiceChannelLeave", "voiceChannelLeave"},
	{"voiceChannelSwitch", "voiceChannelSwitch"},
	{"voiceStateUpdate", "voiceStateUpdate"},
}

// GetLogSettings returns the guild's log-event toggles keyed by dashboard
// field name.
func (h *SettingsHandler) GetLogSettings(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	stored, errLoad := h.store.LogSettings(c.Request.Context(), guildID)
	if errLoad != nil {
		respondStoreError(c, errLoad)
		return
	}

	settings := make(gin.H, len(logFieldMap))
	for _, field := range logFieldMap {
		settings[field.External] = stored[field.Stored]
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// logSettingsRequest is the PUT body for log-event toggles. Unknown keys are
// ignored.
type logSettingsRequest struct {
	Settings map[string]bool `json:"settings"`
}

// PutLogSettings applies the provided toggles.
func (h *SettingsHandler) PutLogSettings(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	var body logSettingsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	updates := make(map[string]bool, len(body.Settings))
	for _, field := range logFieldMap {
		if enabled, present := body.Settings[field.External]; present {
			updates[field.Stored] = enabled
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no valid fields to update"})
		return
	}

	if errUpdate := h.store.UpdateLogSettings(c.Request.Context(), guildID, updates); errUpdate != nil {
		respondStoreError(c, errUpdate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
