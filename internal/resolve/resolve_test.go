package resolve

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// stubTransport serves canned responses by URL substring and records the
// requested URLs.
type stubTransport struct {
	responses map[string]stubResponse
	requests  []string
}

type stubResponse struct {
	status int
	body   string
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	s.requests = append(s.requests, url)
	for key, resp := range s.responses {
		if strings.Contains(url, key) {
			status := resp.status
			if status == 0 {
				status = http.StatusOK
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader(resp.body)),
				Header:     make(http.Header),
				Request:    req,
			}, nil
		}
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader("not found")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func newTestResolver(transport *stubTransport) *Resolver {
	return New(nil, &http.Client{Transport: transport}, nil)
}

const testChannelID = "UCdabcdefghijklmnopqrstu"

func TestResolveYouTubeChannelBareID(t *testing.T) {
	transport := &stubTransport{responses: map[string]stubResponse{
		"/channel/" + testChannelID: {body: `<meta property="og:title" content="Some Creator">`},
	}}
	resolver := newTestResolver(transport)

	channel, errResolve := resolver.ResolveYouTubeChannel(context.Background(), testChannelID)
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if channel.ID != testChannelID {
		t.Fatalf("expected id %q, got %q", testChannelID, channel.ID)
	}
	if channel.Name != "Some Creator" {
		t.Fatalf("expected scraped name, got %q", channel.Name)
	}
}

func TestResolveYouTubeChannelURLPath(t *testing.T) {
	transport := &stubTransport{responses: map[string]stubResponse{
		"/channel/" + testChannelID: {body: `<title>Creator - YouTube</title>`},
	}}
	resolver := newTestResolver(transport)

	channel, errResolve := resolver.ResolveYouTubeChannel(
		context.Background(), "https://www.youtube.com/channel/"+testChannelID+"/videos")
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if channel.ID != testChannelID {
		t.Fatalf("expected id from URL path, got %q", channel.ID)
	}
	if channel.Name != "Creator" {
		t.Fatalf("expected title suffix stripped, got %q", channel.Name)
	}
}

func TestResolveYouTubeChannelScrapePatterns(t *testing.T) {
	pages := []string{
		`{"channelId":"` + testChannelID + `","title":"x"}`,
		`<meta itemprop="channelId" content="` + testChannelID + `">`,
		`<link href="https://www.youtube.com/channel/` + testChannelID + `">`,
	}
	for i, page := range pages {
		transport := &stubTransport{responses: map[string]stubResponse{
			"youtube.com/@somehandle": {body: page},
			"/channel/":               {body: ""},
		}}
		resolver := newTestResolver(transport)

		channel, errResolve := resolver.ResolveYouTubeChannel(context.Background(), "@somehandle")
		if errResolve != nil {
			t.Fatalf("pattern %d: %v", i, errResolve)
		}
		if channel.ID != testChannelID {
			t.Fatalf("pattern %d: expected %q, got %q", i, testChannelID, channel.ID)
		}
	}
}

func TestResolveYouTubeChannelUnresolvable(t *testing.T) {
	transport := &stubTransport{responses: map[string]stubResponse{
		"youtube.com/@nochannel": {body: `<html><body>nothing here</body></html>`},
	}}
	resolver := newTestResolver(transport)

	_, errResolve := resolver.ResolveYouTubeChannel(context.Background(), "@nochannel")
	if !errors.Is(errResolve, ErrUnresolvable) {
		t.Fatalf("expected ErrUnresolvable, got %v", errResolve)
	}
}

func TestTwitterProfileSyndication(t *testing.T) {
	transport := &stubTransport{responses: map[string]stubResponse{
		"cdn.syndication.twimg.com": {body: `[{"name":"Jane Doe","screen_name":"janedoe"}]`},
	}}
	resolver := newTestResolver(transport)

	profile, errResolve := resolver.ResolveTwitterProfile(context.Background(), "https://x.com/JaneDoe?lang=en")
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if profile.Handle != "janedoe" {
		t.Fatalf("expected normalized handle janedoe, got %q", profile.Handle)
	}
	if profile.Name != "Jane Doe" {
		t.Fatalf("expected name from syndication feed, got %q", profile.Name)
	}
}

func TestTwitterProfileTitleFallback(t *testing.T) {
	transport := &stubTransport{responses: map[string]stubResponse{
		"cdn.syndication.twimg.com": {status: http.StatusForbidden, body: "blocked"},
		"x.com/janedoe":             {body: `<title>Jane Doe (@janedoe) / X</title>`},
	}}
	resolver := newTestResolver(transport)

	profile, errResolve := resolver.ResolveTwitterProfile(context.Background(), "@JaneDoe")
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if profile.Name != "Jane Doe" {
		t.Fatalf("expected name from page title, got %q", profile.Name)
	}
}

func TestTwitterProfileCached(t *testing.T) {
	transport := &stubTransport{responses: map[string]stubResponse{
		"cdn.syndication.twimg.com": {body: `[{"name":"Jane Doe","screen_name":"janedoe"}]`},
	}}
	resolver := newTestResolver(transport)
	ctx := context.Background()

	if _, errResolve := resolver.ResolveTwitterProfile(ctx, "janedoe"); errResolve != nil {
		t.Fatalf("first resolve: %v", errResolve)
	}
	if _, errResolve := resolver.ResolveTwitterProfile(ctx, "JaneDoe"); errResolve != nil {
		t.Fatalf("second resolve: %v", errResolve)
	}
	if len(transport.requests) != 1 {
		t.Fatalf("expected 1 upstream request, got %d: %v", len(transport.requests), transport.requests)
	}
}

func TestTwitchAvatarDecapiFallback(t *testing.T) {
	transport := &stubTransport{responses: map[string]stubResponse{
		"decapi.me/twitch/avatar/somestreamer": {body: "https://static-cdn.jtvnw.net/user/avatar.png"},
	}}
	resolver := newTestResolver(transport)

	profile, errResolve := resolver.Avatar(context.Background(), PlatformTwitch, "SomeStreamer")
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if profile.AvatarURL != "https://static-cdn.jtvnw.net/user/avatar.png" {
		t.Fatalf("unexpected avatar url %q", profile.AvatarURL)
	}
}

func TestTwitchAvatarScrapeFallback(t *testing.T) {
	transport := &stubTransport{responses: map[string]stubResponse{
		"decapi.me": {body: "User not found: somestreamer"},
		"twitch.tv/somestreamer": {body: `<meta property="og:title" content="SomeStreamer - Twitch">` +
			`<meta property="og:image" content="https://static-cdn.jtvnw.net/og.png">`},
	}}
	resolver := newTestResolver(transport)

	profile, errResolve := resolver.Avatar(context.Background(), PlatformTwitch, "somestreamer")
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if profile.AvatarURL != "https://static-cdn.jtvnw.net/og.png" {
		t.Fatalf("expected og:image fallback, got %q", profile.AvatarURL)
	}
	if profile.Name != "SomeStreamer - Twitch" {
		t.Fatalf("unexpected profile name %q", profile.Name)
	}
}

func TestAvatarCachedByPlatformAndID(t *testing.T) {
	transport := &stubTransport{responses: map[string]stubResponse{
		"decapi.me": {body: "https://static-cdn.jtvnw.net/user/avatar.png"},
	}}
	resolver := newTestResolver(transport)
	ctx := context.Background()

	if _, errResolve := resolver.Avatar(ctx, PlatformTwitch, "Streamer"); errResolve != nil {
		t.Fatalf("first resolve: %v", errResolve)
	}
	if _, errResolve := resolver.Avatar(ctx, PlatformTwitch, "streamer"); errResolve != nil {
		t.Fatalf("second resolve: %v", errResolve)
	}
	if len(transport.requests) != 1 {
		t.Fatalf("expected cached second lookup, got %d requests", len(transport.requests))
	}
}

func TestAvatarUnknownPlatform(t *testing.T) {
	resolver := newTestResolver(&stubTransport{})
	if _, errResolve := resolver.Avatar(context.Background(), "vimeo", "someone"); errResolve == nil {
		t.Fatalf("expected error for unknown platform")
	}
}
