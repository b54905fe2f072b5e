// Package dashboard wires the HTTP surface consumed by the web dashboard:
// OAuth sign-in, Discord read-through proxies, per-guild settings CRUD and
// creator profile resolution.
package dashboard

import (
	"net/http"
	"strings"

	"github.com/Din0326/Ziin-Project/internal/config"
	"github.com/Din0326/Ziin-Project/internal/discord"
	"github.com/Din0326/Ziin-Project/internal/http/api/dashboard/handlers"
	"github.com/Din0326/Ziin-Project/internal/perms"
	"github.com/Din0326/Ziin-Project/internal/resolve"
	"github.com/Din0326/Ziin-Project/internal/security"
	"github.com/Din0326/Ziin-Project/internal/store"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries everything the dashboard routes need.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Store    *store.Store
	Discord  *discord.Client
	Oracle   *perms.Oracle
	Resolver *resolve.Resolver
}

// RegisterDashboardRoutes registers public and session-guarded routes.
func RegisterDashboardRoutes(r *gin.Engine, deps Deps) {
	if r == nil || deps.Config == nil {
		return
	}

	r.GET("/healthz", handlers.NewHealthHandler(deps.DB).Healthz)

	authHandler := handlers.NewAuthHandler(deps.Config, deps.Discord)
	auth := r.Group("/api/auth")
	auth.GET("/login", authHandler.Login)
	auth.GET("/callback", authHandler.Callback)

	api := r.Group("/api")
	api.Use(sessionMiddleware(deps.Config.Session.JWTSecret))

	api.GET("/auth/session", authHandler.Session)
	api.POST("/auth/logout", authHandler.Logout)

	guildHandler := handlers.NewGuildHandler(deps.Oracle, deps.Discord)
	api.GET("/discord/managed-guilds", guildHandler.ManagedGuilds)
	api.GET("/discord/guild-channels/:serverId", guildHandler.Channels)
	api.GET("/discord/guild-roles/:serverId", guildHandler.Roles)
	api.GET("/discord/bot-membership/:serverId", guildHandler.BotMembership)
	api.GET("/discord/bot-invite", guildHandler.BotInvite)

	settingsHandler := handlers.NewSettingsHandler(deps.Oracle, deps.Store, deps.Discord)
	api.GET("/server-settings/:serverId", settingsHandler.GetGuildSettings)
	api.PUT("/server-settings/:serverId", settingsHandler.PutGuildSettings)
	api.GET("/server-settings/:serverId/bootstrap", settingsHandler.Bootstrap)
	api.GET("/log-settings/:serverId", settingsHandler.GetLogSettings)
	api.PUT("/log-settings/:serverId", settingsHandler.PutLogSettings)
	api.GET("/twitch-settings/:serverId", settingsHandler.GetTwitchSettings)
	api.PUT("/twitch-settings/:serverId", settingsHandler.PutTwitchSettings)
	api.GET("/youtube-settings/:serverId", settingsHandler.GetYouTubeSettings)
	api.PUT("/youtube-settings/:serverId", settingsHandler.PutYouTubeSettings)
	api.GET("/twitter-settings/:serverId", settingsHandler.GetTwitterSettings)
	api.PUT("/twitter-settings/:serverId", settingsHandler.PutTwitterSettings)

	resolveHandler := handlers.NewResolveHandler(deps.Resolver)
	api.POST("/youtube-resolve", resolveHandler.YouTubeChannel)
	api.GET("/profile-avatar", resolveHandler.Avatar)
	api.GET("/twitter-profile", resolveHandler.TwitterProfile)
}

// sessionMiddleware validates the session JWT from the session cookie or the
// Authorization header and loads its claims into the request context.
func sessionMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not signed in"})
			return
		}

		claims, errJWT := security.ParseSession(jwtSecret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
			return
		}

		c.Set(handlers.SessionContextKey, claims)
		c.Next()
	}
}

// sessionToken extracts the raw session JWT, preferring the cookie set by the
// OAuth callback and accepting a bearer header for non-browser clients.
func sessionToken(c *gin.Context) string {
	if cookie, errCookie := c.Cookie(handlers.SessionCookieName); errCookie == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return strings.TrimSpace(token)
}
