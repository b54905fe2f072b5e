package handlers

import (
	"net/http"
	"strings"

	"github.com/Din0326/Ziin-Project/internal/resolve"
	"github.com/gin-gonic/gin"
)

// ResolveHandler serves creator id, name and avatar lookups.
type ResolveHandler struct {
	resolver *resolve.Resolver
}

// NewResolveHandler constructs a ResolveHandler.
func NewResolveHandler(resolver *resolve.Resolver) *ResolveHandler {
	return &ResolveHandler{resolver: resolver}
}

// youtubeResolveRequest is the POST body for channel resolution.
type youtubeResolveRequest struct {
	Input string `json:"input"`
}

// YouTubeChannel resolves free-form channel input to an id and display name.
func (h *ResolveHandler) YouTubeChannel(c *gin.Context) {
	var body youtubeResolveRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Input) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing input"})
		return
	}

	channel, errResolve := h.resolver.ResolveYouTubeChannel(c.Request.Context(), body.Input)
	if errResolve != nil {
		respondResolveError(c, errResolve)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"channelId":   channel.ID,
		"channelName": channel.Name,
	})
}

// Avatar resolves a creator's avatar URL and display name.
func (h *ResolveHandler) Avatar(c *gin.Context) {
	platform := c.Query("platform")
	if platform != resolve.PlatformTwitch && platform != resolve.PlatformYouTube {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown platform"})
		return
	}
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing id"})
		return
	}

	profile, errResolve := h.resolver.Avatar(c.Request.Context(), platform, id)
	if errResolve != nil {
		respondResolveError(c, errResolve)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"avatarUrl":   profile.AvatarURL,
		"profileName": profile.Name,
	})
}

// TwitterProfile resolves a Twitter/X handle or profile URL.
func (h *ResolveHandler) TwitterProfile(c *gin.Context) {
	handle := strings.TrimSpace(c.Query("handle"))
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing handle"})
		return
	}

	profile, errResolve := h.resolver.ResolveTwitterProfile(c.Request.Context(), handle)
	if errResolve != nil {
		respondResolveError(c, errResolve)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"handle":      profile.Handle,
		"profileName": profile.Name,
	})
}
