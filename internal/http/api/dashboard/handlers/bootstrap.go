package handlers

import (
	"errors"
	"net/http"

	"github.com/Din0326/Ziin-Project/internal/discord"
	"github.com/Din0326/Ziin-Project/internal/store"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Bootstrap aggregates everything the dashboard's settings page needs in one
// round trip: the four settings families it renders first plus the guild's
// channels and roles. The fetches run concurrently; any failure fails the
// whole response.
func (h *SettingsHandler) Bootstrap(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	var (
		guildSettings   store.GuildSettings
		logSettings     map[string]bool
		twitchSettings  store.TwitchSettings
		youtubeSettings store.YouTubeSettings
		channels        []discord.Channel
		roles           []discord.Role
	)

	group, ctx := errgroup.WithContext(c.Request.Context())
	group.Go(func() error {
		var errLoad error
		guildSettings, errLoad = h.store.GuildSettings(ctx, guildID)
		return errLoad
	})
	group.Go(func() error {
		var errLoad error
		logSettings, errLoad = h.store.LogSettings(ctx, guildID)
		return errLoad
	})
	group.Go(func() error {
		var errLoad error
		twitchSettings, errLoad = h.store.TwitchSettings(ctx, guildID)
		return errLoad
	})
	group.Go(func() error {
		var errLoad error
		youtubeSettings, errLoad = h.store.YouTubeSettings(ctx, guildID)
		return errLoad
	})
	group.Go(func() error {
		var errFetch error
		channels, errFetch = h.directory.GuildChannels(ctx, guildID)
		return errFetch
	})
	group.Go(func() error {
		var errFetch error
		roles, errFetch = h.directory.GuildRoles(ctx, guildID)
		return errFetch
	})

	if errWait := group.Wait(); errWait != nil {
		var statusErr *discord.StatusError
		if errors.As(errWait, &statusErr) {
			respondDiscordError(c, errWait)
			return
		}
		respondStoreError(c, errWait)
		return
	}

	mappedLogSettings := make(gin.H, len(logFieldMap))
	for _, field := range logFieldMap {
		mappedLogSettings[field.External] = logSettings[field.Stored]
	}

	channelList := make([]gin.H, 0, len(channels))
	for _, channel := range channels {
		channelList = append(channelList, gin.H{"id": channel.ID, "name": channel.Name})
	}
	roleList := make([]gin.H, 0, len(roles))
	for _, role := range roles {
		roleList = append(roleList, gin.H{"id": role.ID, "name": role.Name, "managed": role.Managed})
	}

	c.JSON(http.StatusOK, gin.H{
		"bootstrap": gin.H{
			"serverSettings": guildSettingsJSON(guildSettings),
			"logSettings":    mappedLogSettings,
			"twitchSettings": gin.H{
				"twitchNotificationChannel": twitchSettings.NotificationChannel,
				"twitchNotificationText":    twitchSettings.NotificationText,
				"allStreamers":              twitchSettings.AllStreamers,
			},
			"youtubeSettings": youtubeSettingsJSON(youtubeSettings),
			"channels":        channelList,
			"roles":           roleList,
		},
	})
}
