package resolve

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

// TwitterProfile is a resolved Twitter/X account identity.
type TwitterProfile struct {
	Handle string `json:"handle"`
	Name   string `json:"profileName"`
}

// twitterTitlePattern splits an x.com page title into display name and
// handle, e.g. "Jane Doe (@janedoe) / X".
var twitterTitlePattern = regexp.MustCompile(`^\s*(.*?)\s*\(@([A-Za-z0-9_]{1,15})\)`)

// NormalizeTwitterHandle strips a profile URL down to the bare handle,
// lowercased with no leading @.
func NormalizeTwitterHandle(input string) string {
	handle := strings.TrimSpace(input)
	for _, prefix := range []string{"https://", "http://"} {
		handle = strings.TrimPrefix(handle, prefix)
	}
	for _, host := range []string{"www.", "x.com/", "twitter.com/"} {
		handle = strings.TrimPrefix(handle, host)
	}
	if slash := strings.IndexByte(handle, '/'); slash >= 0 {
		handle = handle[:slash]
	}
	if question := strings.IndexByte(handle, '?'); question >= 0 {
		handle = handle[:question]
	}
	return strings.ToLower(strings.TrimPrefix(handle, "@"))
}

// ResolveTwitterProfile resolves a handle or profile URL to the account's
// canonical handle and display name, trying the syndication follow-button
// feed before scraping the profile page title. Results are cached for 30
// minutes.
func (r *Resolver) ResolveTwitterProfile(ctx context.Context, input string) (TwitterProfile, error) {
	handle := NormalizeTwitterHandle(input)
	if handle == "" {
		return TwitterProfile{}, ErrUnresolvable
	}
	cacheKey := "twitter:" + handle
	if cached, ok := r.profiles.Get(cacheKey); ok {
		return TwitterProfile{Handle: handle, Name: cached.Name}, nil
	}

	name, errResolve := r.twitterDisplayName(ctx, handle)
	if errResolve != nil {
		return TwitterProfile{}, errResolve
	}
	r.profiles.Set(cacheKey, Profile{Name: name})
	return TwitterProfile{Handle: handle, Name: name}, nil
}

func (r *Resolver) twitterDisplayName(ctx context.Context, handle string) (string, error) {
	if name, errSyndication := r.syndicationName(ctx, handle); errSyndication == nil {
		return name, nil
	}

	page, errFetch := r.fetchPage(ctx, "https://x.com/"+url.PathEscape(handle))
	if errFetch != nil {
		return "", errFetch
	}
	title := extractTitle(page)
	if match := twitterTitlePattern.FindStringSubmatch(title); match != nil {
		return match[1], nil
	}
	return "", ErrUnresolvable
}

// syndicationName asks the unauthenticated follow-button feed for the
// account's display name.
func (r *Resolver) syndicationName(ctx context.Context, handle string) (string, error) {
	endpoint := "https://cdn.syndication.twimg.com/widgets/followbutton/info.json?screen_names=" + url.QueryEscape(handle)
	body, errFetch := r.fetchPage(ctx, endpoint)
	if errFetch != nil {
		return "", errFetch
	}

	var accounts []struct {
		Name       string `json:"name"`
		ScreenName string `json:"screen_name"`
	}
	if errDecode := json.Unmarshal([]byte(body), &accounts); errDecode != nil {
		return "", errDecode
	}
	if len(accounts) == 0 || accounts[0].Name == "" {
		return "", ErrUnresolvable
	}
	return accounts[0].Name, nil
}
