package handlers

import (
	"net/http"

	"github.com/Din0326/Ziin-Project/internal/config"
	"github.com/Din0326/Ziin-Project/internal/discord"
	"github.com/Din0326/Ziin-Project/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// oauthStateCookie carries the CSRF state between login and callback.
const oauthStateCookie = "ziin_oauth_state"

// discordEndpoint is Discord's OAuth2 endpoint pair.
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

// AuthHandler runs the Discord OAuth sign-in flow and issues session JWTs.
type AuthHandler struct {
	cfg     *config.Config
	discord *discord.Client
	oauth   *oauth2.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg *config.Config, discordClient *discord.Client) *AuthHandler {
	return &AuthHandler{
		cfg:     cfg,
		discord: discordClient,
		oauth: &oauth2.Config{
			ClientID:     cfg.Discord.ClientID,
			ClientSecret: cfg.Discord.ClientSecret,
			RedirectURL:  cfg.Discord.RedirectURL,
			Scopes:       []string{"identify", "guilds"},
			Endpoint:     discordEndpoint,
		},
	}
}

// Login redirects the browser to Discord's authorize page with a fresh state
// cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

// Callback exchanges the authorization code, resolves the signed-in user and
// sets the session cookie.
func (h *AuthHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	cookieState, errCookie := c.Cookie(oauthStateCookie)
	if errCookie != nil || state == "" || state != cookieState {
		c.JSON(http.StatusBadRequest, gin.H{"message": "state mismatch"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing code"})
		return
	}

	token, errExchange := h.oauth.Exchange(c.Request.Context(), code)
	if errExchange != nil {
		log.WithError(errExchange).Warn("oauth code exchange failed")
		c.JSON(http.StatusBadGateway, gin.H{"message": "discord sign-in failed"})
		return
	}

	user, errUser := h.discord.CurrentUser(c.Request.Context(), token.AccessToken)
	if errUser != nil {
		log.WithError(errUser).Warn("oauth user lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"message": "discord sign-in failed"})
		return
	}

	session, errSign := security.GenerateSession(
		h.cfg.Session.JWTSecret, user.ID, user.Username, user.Avatar,
		token.AccessToken, h.cfg.Session.TTL,
	)
	if errSign != nil {
		log.WithError(errSign).Error("session signing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "session creation failed"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, session, int(h.cfg.Session.TTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// Session returns the signed-in user's identity.
func (h *AuthHandler) Session(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not signed in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"avatar":   claims.Avatar,
		},
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
