package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/Din0326/Ziin-Project/internal/perms"
	"github.com/Din0326/Ziin-Project/internal/resolve"
	"github.com/Din0326/Ziin-Project/internal/security"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Session plumbing shared with the route registration layer.
const (
	// SessionContextKey is the gin context key holding *security.SessionClaims.
	SessionContextKey = "session"
	// SessionCookieName is the cookie carrying the session JWT.
	SessionCookieName = "ziin_session"
)

// sessionClaims returns the claims loaded by the session middleware.
func sessionClaims(c *gin.Context) *security.SessionClaims {
	value, ok := c.Get(SessionContextKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*security.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// snowflakePattern matches a Discord id (guild, channel, user).
var snowflakePattern = regexp.MustCompile(`^\d{1,32}$`)

// guildIDParam validates the :serverId path parameter. On failure it writes
// the 400 response and returns false.
func guildIDParam(c *gin.Context) (string, bool) {
	guildID := c.Param("serverId")
	if !snowflakePattern.MatchString(guildID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid server id"})
		return "", false
	}
	return guildID, true
}

// authorizeGuild runs the permission check for a settings or proxy route and
// writes the error response itself when the caller may not proceed.
func authorizeGuild(c *gin.Context, oracle *perms.Oracle) (string, bool) {
	guildID, ok := guildIDParam(c)
	if !ok {
		return "", false
	}

	claims := sessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not signed in"})
		return "", false
	}

	if errAuth := oracle.Authorize(c.Request.Context(), claims.AccessToken, guildID); errAuth != nil {
		respondAuthError(c, errAuth)
		return "", false
	}
	return guildID, true
}

// respondAuthError maps Permission Oracle failures onto HTTP statuses.
func respondAuthError(c *gin.Context, err error) {
	var upstreamErr *perms.UpstreamError
	switch {
	case errors.Is(err, perms.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not signed in"})
	case errors.Is(err, perms.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "missing manage permission"})
	case errors.As(err, &upstreamErr):
		c.JSON(upstreamErr.Status, gin.H{"message": "discord request failed"})
	default:
		log.WithError(err).Error("guild authorization failed")
		c.JSON(http.StatusBadGateway, gin.H{"message": "discord request failed"})
	}
}

// respondResolveError maps resolver failures onto HTTP statuses. Extraction
// failures are the client's problem, fetch failures the upstream's.
func respondResolveError(c *gin.Context, err error) {
	var upstreamErr *resolve.UpstreamError
	switch {
	case errors.Is(err, resolve.ErrUnresolvable):
		c.JSON(http.StatusBadRequest, gin.H{"message": "could not resolve profile"})
	case errors.As(err, &upstreamErr):
		c.JSON(upstreamErr.Status, gin.H{"message": "profile lookup failed"})
	default:
		log.WithError(err).Error("profile resolution failed")
		c.JSON(http.StatusBadGateway, gin.H{"message": "profile lookup failed"})
	}
}

// respondStoreError logs a persistence failure and answers 500.
func respondStoreError(c *gin.Context, err error) {
	log.WithError(err).Error("settings store failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "storage failed"})
}

// nullableString distinguishes an absent JSON field from an explicit null.
// Absent fields leave Set false; null sets Set with a nil Value.
type nullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var value string
	if errUnmarshal := json.Unmarshal(data, &value); errUnmarshal != nil {
		return errUnmarshal
	}
	n.Value = &value
	return nil
}

// validChannelRef accepts a cleared reference (nil) or an all-digit id.
func validChannelRef(value *string) bool {
	return value == nil || snowflakePattern.MatchString(*value)
}
