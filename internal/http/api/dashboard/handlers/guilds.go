package handlers

import (
	"errors"
	"net/http"

	"github.com/Din0326/Ziin-Project/internal/discord"
	"github.com/Din0326/Ziin-Project/internal/perms"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// GuildHandler serves the Discord read-through proxy routes.
type GuildHandler struct {
	oracle  *perms.Oracle
	discord *discord.Client
}

// NewGuildHandler constructs a GuildHandler.
func NewGuildHandler(oracle *perms.Oracle, discordClient *discord.Client) *GuildHandler {
	return &GuildHandler{oracle: oracle, discord: discordClient}
}

// ManagedGuilds lists the guilds the caller can manage, with CDN icon URLs.
func (h *GuildHandler) ManagedGuilds(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not signed in"})
		return
	}

	guilds, errGuilds := h.oracle.ManagedGuilds(c.Request.Context(), claims.AccessToken)
	if errGuilds != nil {
		respondAuthError(c, errGuilds)
		return
	}

	result := make([]gin.H, 0, len(guilds))
	for _, guild := range guilds {
		result = append(result, gin.H{
			"id":      guild.ID,
			"name":    guild.Name,
			"iconUrl": discord.IconURL(guild.ID, guild.Icon),
			"owner":   guild.Owner,
		})
	}
	c.JSON(http.StatusOK, gin.H{"guilds": result})
}

// Channels lists the guild's text-capable channels.
func (h *GuildHandler) Channels(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	channels, errFetch := h.discord.GuildChannels(c.Request.Context(), guildID)
	if errFetch != nil {
		respondDiscordError(c, errFetch)
		return
	}

	result := make([]gin.H, 0, len(channels))
	for _, channel := range channels {
		result = append(result, gin.H{
			"id":       channel.ID,
			"name":     channel.Name,
			"type":     channel.Type,
			"parentId": channel.ParentID,
			"position": channel.Position,
		})
	}
	c.JSON(http.StatusOK, gin.H{"channels": result})
}

// Roles lists the guild's roles.
func (h *GuildHandler) Roles(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	roles, errFetch := h.discord.GuildRoles(c.Request.Context(), guildID)
	if errFetch != nil {
		respondDiscordError(c, errFetch)
		return
	}

	result := make([]gin.H, 0, len(roles))
	for _, role := range roles {
		result = append(result, gin.H{
			"id":       role.ID,
			"name":     role.Name,
			"position": role.Position,
			"managed":  role.Managed,
		})
	}
	c.JSON(http.StatusOK, gin.H{"roles": result})
}

// BotMembership reports whether the bot is in the guild, with an invite URL
// to add it when absent.
func (h *GuildHandler) BotMembership(c *gin.Context) {
	guildID, ok := authorizeGuild(c, h.oracle)
	if !ok {
		return
	}

	inGuild, errCheck := h.discord.GuildExists(c.Request.Context(), guildID)
	if errCheck != nil {
		respondDiscordError(c, errCheck)
		return
	}

	clientID, errClientID := h.discord.BotClientID(c.Request.Context())
	if errClientID != nil {
		respondDiscordError(c, errClientID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inGuild":   inGuild,
		"inviteUrl": discord.InviteURL(clientID, guildID),
	})
}

// BotInvite redirects to the generic bot authorization URL.
func (h *GuildHandler) BotInvite(c *gin.Context) {
	clientID, errClientID := h.discord.BotClientID(c.Request.Context())
	if errClientID != nil {
		respondDiscordError(c, errClientID)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, discord.InviteURL(clientID, ""))
}

// respondDiscordError maps bot-session REST failures onto HTTP statuses.
func respondDiscordError(c *gin.Context, err error) {
	var statusErr *discord.StatusError
	if errors.As(err, &statusErr) {
		c.JSON(statusErr.Code, gin.H{"message": "discord request failed"})
		return
	}
	log.WithError(err).Error("discord request failed")
	c.JSON(http.StatusBadGateway, gin.H{"message": "discord request failed"})
}
