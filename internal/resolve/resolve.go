// Package resolve turns user-supplied creator identifiers (YouTube URLs,
// Twitch logins, Twitter handles) into canonical ids, display names and
// avatar URLs, using public metadata APIs where available and Open Graph
// scraping as the fallback.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Din0326/Ziin-Project/internal/cache"
	"github.com/Din0326/Ziin-Project/internal/config"
)

// Scraped pages and avatar lookups change rarely; 30 minutes bounds both the
// staleness and the request rate against the public endpoints.
const profileCacheTTL = 30 * time.Minute

// Page fetches are capped so a hostile or broken upstream cannot balloon
// memory.
const maxPageBytes = 2 << 20

// desktopUserAgent is sent on scraping requests; several of the scraped
// sites serve reduced markup to unknown agents.
const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// ErrUnresolvable indicates the upstream responded but the expected field
// could not be extracted. Handlers map it to a client error, not a 5xx.
var ErrUnresolvable = errors.New("resolve: could not extract profile data")

// UpstreamError reports a non-success status from a metadata or page fetch.
type UpstreamError struct {
	Status int
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("resolve: upstream returned status %d", e.Status)
}

// Profile is a resolved creator identity.
type Profile struct {
	Name      string `json:"profileName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Resolver performs the lookups. All HTTP traffic goes through the injected
// client and all cache expiry through the injected clock, so tests can stub
// both.
type Resolver struct {
	httpClient *http.Client
	helix      *helixClient
	avatars    *cache.TTL[Profile]
	profiles   *cache.TTL[Profile]
}

// New constructs a Resolver. Twitch Helix lookups are enabled only when cfg
// carries Helix credentials; without them avatar resolution falls back to
// scraping. A nil httpClient uses http.DefaultClient, a nil now uses time.Now.
func New(cfg *config.Config, httpClient *http.Client, now func() time.Time) *Resolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resolver := &Resolver{
		httpClient: httpClient,
		avatars:    cache.NewTTL[Profile](profileCacheTTL, now),
		profiles:   cache.NewTTL[Profile](profileCacheTTL, now),
	}
	if cfg != nil && cfg.HasTwitchCredentials() {
		resolver.helix = newHelixClient(cfg.Twitch.ClientID, cfg.Twitch.ClientSecret, httpClient)
	}
	return resolver
}

// fetchPage retrieves url with a desktop user agent and returns the body.
// Non-2xx responses become *UpstreamError.
func (r *Resolver) fetchPage(ctx context.Context, url string) (string, error) {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if errReq != nil {
		return "", errReq
	}
	req.Header.Set("User-Agent", desktopUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, errDo := r.httpClient.Do(req)
	if errDo != nil {
		return "", errDo
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{Status: resp.StatusCode}
	}
	body, errRead := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if errRead != nil {
		return "", errRead
	}
	return string(body), nil
}

// Open Graph meta tags appear with property/content in either order.
const (
	ogForwardPattern  = `<meta[^>]+property="og:%s"[^>]+content="([^"]*)"`
	ogReversedPattern = `<meta[^>]+content="([^"]*)"[^>]+property="og:%s"`
)

// extractOpenGraph pulls the content of an og:<name> meta tag from page HTML.
func extractOpenGraph(page, name string) string {
	quoted := regexp.QuoteMeta(name)
	forward := regexp.MustCompile(fmt.Sprintf(ogForwardPattern, quoted))
	if match := forward.FindStringSubmatch(page); match != nil {
		return html.UnescapeString(match[1])
	}
	reversed := regexp.MustCompile(fmt.Sprintf(ogReversedPattern, quoted))
	if match := reversed.FindStringSubmatch(page); match != nil {
		return html.UnescapeString(match[1])
	}
	return ""
}

var titlePattern = regexp.MustCompile(`<title[^>]*>([^<]*)</title>`)

// extractTitle pulls the document title from page HTML.
func extractTitle(page string) string {
	if match := titlePattern.FindStringSubmatch(page); match != nil {
		return html.UnescapeString(strings.TrimSpace(match[1]))
	}
	return ""
}
