package resolve

import (
	"context"
	"regexp"
	"strings"
)

// YouTubeChannel is a resolved channel identity.
type YouTubeChannel struct {
	ID   string `json:"channelId"`
	Name string `json:"channelName"`
}

// channelIDPattern matches a bare YouTube channel id.
var channelIDPattern = regexp.MustCompile(`^UC[\w-]{22}$`)

// Channel id markers embedded in a channel page, tried in order.
var channelIDExtractors = []*regexp.Regexp{
	regexp.MustCompile(`"channelId":"(UC[\w-]{22})"`),
	regexp.MustCompile(`<meta[^>]+itemprop="channelId"[^>]+content="(UC[\w-]{22})"`),
	regexp.MustCompile(`youtube\.com/channel/(UC[\w-]{22})`),
}

// channelPathPattern extracts the id from a canonical /channel/ URL.
var channelPathPattern = regexp.MustCompile(`/channel/(UC[\w-]{22})`)

// ResolveYouTubeChannel accepts a bare channel id, a /channel/ URL, or any
// handle, custom URL or video URL, and resolves it to the channel id and
// display name. Inputs that need a page fetch return ErrUnresolvable when the
// page carries no recognizable channel id marker.
func (r *Resolver) ResolveYouTubeChannel(ctx context.Context, input string) (YouTubeChannel, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return YouTubeChannel{}, ErrUnresolvable
	}

	if channelIDPattern.MatchString(trimmed) {
		return r.channelByID(ctx, trimmed)
	}
	if match := channelPathPattern.FindStringSubmatch(trimmed); match != nil {
		return r.channelByID(ctx, match[1])
	}

	page, errFetch := r.fetchPage(ctx, youtubePageURL(trimmed))
	if errFetch != nil {
		return YouTubeChannel{}, errFetch
	}
	for _, extractor := range channelIDExtractors {
		if match := extractor.FindStringSubmatch(page); match != nil {
			return YouTubeChannel{ID: match[1], Name: channelNameFromPage(page)}, nil
		}
	}
	return YouTubeChannel{}, ErrUnresolvable
}

// channelByID fetches the canonical channel page for its display name. A
// failed fetch still yields the id so callers can proceed without a name.
func (r *Resolver) channelByID(ctx context.Context, channelID string) (YouTubeChannel, error) {
	channel := YouTubeChannel{ID: channelID}
	page, errFetch := r.fetchPage(ctx, "https://www.youtube.com/channel/"+channelID)
	if errFetch != nil {
		return channel, nil
	}
	channel.Name = channelNameFromPage(page)
	return channel, nil
}

// youtubePageURL rewrites free-form input into a fetchable YouTube URL.
func youtubePageURL(input string) string {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return input
	}
	if strings.Contains(input, "youtube.com/") || strings.Contains(input, "youtu.be/") {
		return "https://" + input
	}
	handle := strings.TrimPrefix(input, "@")
	return "https://www.youtube.com/@" + handle
}

// channelNameFromPage prefers the og:title tag and falls back to the
// document title, stripping YouTube's title suffix.
func channelNameFromPage(page string) string {
	if name := extractOpenGraph(page, "title"); name != "" {
		return name
	}
	title := extractTitle(page)
	return strings.TrimSpace(strings.TrimSuffix(title, "- YouTube"))
}
