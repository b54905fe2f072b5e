// Package discord wraps the Discord REST API calls the dashboard needs: the
// caller's guild list (user OAuth token) and guild channel/role/membership
// lookups (bot token).
package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Client issues Discord REST calls. A single bot session is shared; user
// guild-list calls build a short-lived bearer session per token.
type Client struct {
	bot      *discordgo.Session
	clientID string

	mu          sync.Mutex
	cachedBotID string
}

// New constructs a Client from a bot token. clientID may be empty, in which
// case the application id is resolved once via users/@me.
func New(botToken, clientID string) (*Client, error) {
	token := strings.TrimSpace(botToken)
	if token == "" {
		return nil, fmt.Errorf("discord: empty bot token")
	}
	session, errNew := discordgo.New("Bot " + token)
	if errNew != nil {
		return nil, fmt.Errorf("discord: create session: %w", errNew)
	}
	return &Client{bot: session, clientID: strings.TrimSpace(clientID)}, nil
}

// wrapRESTError converts discordgo REST failures into StatusError.
func wrapRESTError(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return &StatusError{Code: restErr.Response.StatusCode}
	}
	return err
}

// UserGuilds fetches the guild list of the user owning bearerToken. The
// permission bitmask is kept as its raw decimal string.
func (c *Client) UserGuilds(ctx context.Context, bearerToken string) ([]Guild, error) {
	session, errNew := discordgo.New("Bearer " + bearerToken)
	if errNew != nil {
		return nil, fmt.Errorf("discord: create bearer session: %w", errNew)
	}

	body, errReq := session.Request("GET", discordgo.EndpointUserGuilds("@me")+"?limit=200", nil, discordgo.WithContext(ctx))
	if errReq != nil {
		return nil, wrapRESTError(errReq)
	}

	var guilds []Guild
	if errUnmarshal := json.Unmarshal(body, &guilds); errUnmarshal != nil {
		return nil, fmt.Errorf("discord: decode guild list: %w", errUnmarshal)
	}
	return guilds, nil
}

// CurrentUser fetches the identity of the user owning bearerToken.
func (c *Client) CurrentUser(ctx context.Context, bearerToken string) (User, error) {
	session, errNew := discordgo.New("Bearer " + bearerToken)
	if errNew != nil {
		return User{}, fmt.Errorf("discord: create bearer session: %w", errNew)
	}

	body, errReq := session.Request("GET", discordgo.EndpointUser("@me"), nil, discordgo.WithContext(ctx))
	if errReq != nil {
		return User{}, wrapRESTError(errReq)
	}

	var user User
	if errUnmarshal := json.Unmarshal(body, &user); errUnmarshal != nil {
		return User{}, fmt.Errorf("discord: decode user: %w", errUnmarshal)
	}
	return user, nil
}

// GuildChannels returns the guild's text-capable channels (text and
// announcement types) sorted ascending by position.
func (c *Client) GuildChannels(ctx context.Context, guildID string) ([]Channel, error) {
	channels, errFetch := c.bot.GuildChannels(guildID, discordgo.WithContext(ctx))
	if errFetch != nil {
		return nil, wrapRESTError(errFetch)
	}

	result := make([]Channel, 0, len(channels))
	for _, channel := range channels {
		if channel.Type != discordgo.ChannelTypeGuildText && channel.Type != discordgo.ChannelTypeGuildNews {
			continue
		}
		result = append(result, Channel{
			ID:       channel.ID,
			Name:     channel.Name,
			Type:     int(channel.Type),
			ParentID: channel.ParentID,
			Position: channel.Position,
		})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

// GuildRoles returns the guild's roles without the implicit everyone-role,
// sorted descending by position.
func (c *Client) GuildRoles(ctx context.Context, guildID string) ([]Role, error) {
	roles, errFetch := c.bot.GuildRoles(guildID, discordgo.WithContext(ctx))
	if errFetch != nil {
		return nil, wrapRESTError(errFetch)
	}

	result := make([]Role, 0, len(roles))
	for _, role := range roles {
		if role.Name == "@everyone" || role.ID == guildID {
			continue
		}
		result = append(result, Role{
			ID:       role.ID,
			Name:     role.Name,
			Position: role.Position,
			Managed:  role.Managed,
		})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Position > result[j].Position })
	return result, nil
}

// GuildExists reports whether the bot is a member of the guild. Only a 403
// (no access) or 404 (unknown guild) reads as absence; other REST failures
// propagate so an upstream outage is not mistaken for a missing bot.
func (c *Client) GuildExists(ctx context.Context, guildID string) (bool, error) {
	_, errFetch := c.bot.Guild(guildID, discordgo.WithContext(ctx))
	if errFetch != nil {
		var restErr *discordgo.RESTError
		if errors.As(errFetch, &restErr) && restErr.Response != nil {
			switch restErr.Response.StatusCode {
			case http.StatusForbidden, http.StatusNotFound:
				return false, nil
			}
			return false, &StatusError{Code: restErr.Response.StatusCode}
		}
		return false, errFetch
	}
	return true, nil
}

// BotClientID returns the application client id, resolving it once through
// users/@me when the config does not provide one.
func (c *Client) BotClientID(ctx context.Context) (string, error) {
	if c.clientID != "" {
		return c.clientID, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cachedBotID != "" {
		return c.cachedBotID, nil
	}

	user, errFetch := c.bot.User("@me", discordgo.WithContext(ctx))
	if errFetch != nil {
		return "", wrapRESTError(errFetch)
	}
	c.cachedBotID = user.ID
	return c.cachedBotID, nil
}

// InviteURL builds the bot authorization URL. A non-empty guildID preselects
// the guild and locks the picker.
func InviteURL(clientID, guildID string) string {
	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("permissions", "8")
	params.Set("scope", "bot applications.commands")
	if guildID != "" {
		params.Set("guild_id", guildID)
		params.Set("disable_guild_select", "true")
	}
	return "https://discord.com/oauth2/authorize?" + params.Encode()
}

// IconURL builds the CDN URL for a guild icon hash, or "" when unset.
func IconURL(guildID, iconHash string) string {
	if iconHash == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/icons/%s/%s.webp?size=256", guildID, iconHash)
}
