package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Avatar resolution platforms.
const (
	PlatformTwitch  = "twitch"
	PlatformYouTube = "youtube"
)

// Avatar resolves the avatar URL and display name for a creator on the given
// platform. Results, including scrape fallbacks, are cached for 30 minutes
// keyed by platform and lowercased id.
func (r *Resolver) Avatar(ctx context.Context, platform, id string) (Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, ErrUnresolvable
	}
	cacheKey := platform + ":" + strings.ToLower(id)
	if cached, ok := r.avatars.Get(cacheKey); ok {
		return cached, nil
	}

	var (
		profile  Profile
		errFetch error
	)
	switch platform {
	case PlatformTwitch:
		profile, errFetch = r.twitchAvatar(ctx, id)
	case PlatformYouTube:
		profile, errFetch = r.youtubeAvatar(ctx, id)
	default:
		return Profile{}, fmt.Errorf("resolve: unknown platform %q", platform)
	}
	if errFetch != nil {
		return Profile{}, errFetch
	}
	r.avatars.Set(cacheKey, profile)
	return profile, nil
}

// twitchAvatar tries Helix, then decapi.me, then og:image scraping. Twitch
// logins are lowercase identifiers.
func (r *Resolver) twitchAvatar(ctx context.Context, login string) (Profile, error) {
	login = strings.ToLower(login)
	if r.helix != nil {
		if profile, errHelix := r.helix.userProfile(ctx, login); errHelix == nil {
			return profile, nil
		}
	}
	if avatarURL, errDecapi := r.decapiAvatar(ctx, login); errDecapi == nil {
		return Profile{Name: login, AvatarURL: avatarURL}, nil
	}
	return r.scrapeProfile(ctx, "https://www.twitch.tv/"+url.PathEscape(login), login)
}

// youtubeAvatar scrapes the channel page's Open Graph tags.
func (r *Resolver) youtubeAvatar(ctx context.Context, id string) (Profile, error) {
	pageURL := "https://www.youtube.com/@" + url.PathEscape(strings.TrimPrefix(id, "@"))
	if channelIDPattern.MatchString(id) {
		pageURL = "https://www.youtube.com/channel/" + id
	}
	return r.scrapeProfile(ctx, pageURL, id)
}

// scrapeProfile extracts og:image and og:title from a public profile page.
func (r *Resolver) scrapeProfile(ctx context.Context, pageURL, fallbackName string) (Profile, error) {
	page, errFetch := r.fetchPage(ctx, pageURL)
	if errFetch != nil {
		return Profile{}, errFetch
	}
	avatarURL := extractOpenGraph(page, "image")
	if avatarURL == "" {
		return Profile{}, ErrUnresolvable
	}
	name := extractOpenGraph(page, "title")
	if name == "" {
		name = fallbackName
	}
	return Profile{Name: name, AvatarURL: avatarURL}, nil
}

// decapiAvatar asks decapi.me for a Twitch avatar URL. The endpoint answers
// 200 with an error sentence when the login is unknown, so the body is
// sanity-checked for a URL.
func (r *Resolver) decapiAvatar(ctx context.Context, login string) (string, error) {
	body, errFetch := r.fetchPage(ctx, "https://decapi.me/twitch/avatar/"+url.PathEscape(login))
	if errFetch != nil {
		return "", errFetch
	}
	avatarURL := strings.TrimSpace(body)
	if !strings.HasPrefix(avatarURL, "https://") {
		return "", ErrUnresolvable
	}
	return avatarURL, nil
}

// helixClient calls the Twitch Helix users endpoint with an app access token
// minted through the client-credentials flow.
type helixClient struct {
	clientID   string
	tokens     oauth2.TokenSource
	httpClient *http.Client
}

func newHelixClient(clientID, clientSecret string, httpClient *http.Client) *helixClient {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     "https://id.twitch.tv/oauth2/token",
	}
	// Token requests must ride the same injected client as everything else.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	return &helixClient{
		clientID:   clientID,
		tokens:     conf.TokenSource(tokenCtx),
		httpClient: httpClient,
	}
}

// userProfile looks up a Twitch user by login.
func (h *helixClient) userProfile(ctx context.Context, login string) (Profile, error) {
	token, errToken := h.tokens.Token()
	if errToken != nil {
		return Profile{}, errToken
	}

	endpoint := "https://api.twitch.tv/helix/users?login=" + url.QueryEscape(strings.ToLower(login))
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if errReq != nil {
		return Profile{}, errReq
	}
	token.SetAuthHeader(req)
	req.Header.Set("Client-Id", h.clientID)

	resp, errDo := h.httpClient.Do(req)
	if errDo != nil {
		return Profile{}, errDo
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Profile{}, &UpstreamError{Status: resp.StatusCode}
	}

	var payload struct {
		Data []struct {
			DisplayName     string `json:"display_name"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"data"`
	}
	if errDecode := json.NewDecoder(io.LimitReader(resp.Body, maxPageBytes)).Decode(&payload); errDecode != nil {
		return Profile{}, errDecode
	}
	if len(payload.Data) == 0 {
		return Profile{}, ErrUnresolvable
	}
	return Profile{
		Name:      payload.Data[0].DisplayName,
		AvatarURL: payload.Data[0].ProfileImageURL,
	}, nil
}
