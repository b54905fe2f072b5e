// Package perms answers "may this user administer this guild's bot
// settings?". Guild lists are cached per bearer token for a short TTL and
// concurrent fetches for the same token are coalesced into one upstream call.
package perms

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Din0326/Ziin-Project/internal/cache"
	"github.com/Din0326/Ziin-Project/internal/discord"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/singleflight"
)

// Guild lists are requested on nearly every settings call; 15 seconds keeps
// permission revocation visible quickly without hammering the upstream.
const guildCacheTTL = 15 * time.Second

// Authorization failures.
var (
	// ErrUnauthorized indicates a missing or empty bearer token.
	ErrUnauthorized = errors.New("perms: missing session")
	// ErrForbidden indicates the caller lacks manage permission on the guild.
	ErrForbidden = errors.New("perms: missing manage permission")
)

// UpstreamError reports a failed guild-list fetch with the upstream status.
type UpstreamError struct {
	Status int
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("perms: guild list fetch failed with status %d", e.Status)
}

// Fetcher resolves a bearer token to the user's guild list.
type Fetcher interface {
	UserGuilds(ctx context.Context, bearerToken string) ([]discord.Guild, error)
}

// Oracle caches and coalesces guild-list lookups and evaluates the manage
// permission bitmask.
type Oracle struct {
	fetcher Fetcher
	guilds  *cache.TTL[[]discord.Guild]
	group   singleflight.Group
}

// NewOracle constructs an Oracle. A nil now falls back to time.Now.
func NewOracle(fetcher Fetcher, now func() time.Time) *Oracle {
	return &Oracle{
		fetcher: fetcher,
		guilds:  cache.NewTTL[[]discord.Guild](guildCacheTTL, now),
	}
}

// Guilds returns the caller's guild list, served from cache when fresh.
// Failed fetches are never cached; concurrent calls for the same token share
// one upstream request.
func (o *Oracle) Guilds(ctx context.Context, bearerToken string) ([]discord.Guild, error) {
	if cached, ok := o.guilds.Get(bearerToken); ok {
		return cached, nil
	}

	result, err, _ := o.group.Do(bearerToken, func() (any, error) {
		// A coalesced waiter may arrive after the winning call populated
		// the cache.
		if cached, ok := o.guilds.Get(bearerToken); ok {
			return cached, nil
		}
		fetched, errFetch := o.fetcher.UserGuilds(ctx, bearerToken)
		if errFetch != nil {
			return nil, errFetch
		}
		o.guilds.Set(bearerToken, fetched)
		return fetched, nil
	})
	if err != nil {
		var statusErr *discord.StatusError
		if errors.As(err, &statusErr) {
			return nil, &UpstreamError{Status: statusErr.Code}
		}
		return nil, err
	}
	return result.([]discord.Guild), nil
}

// Authorize checks that the bearer token's owner can manage guildID.
// Returns nil, ErrUnauthorized, ErrForbidden, or *UpstreamError.
func (o *Oracle) Authorize(ctx context.Context, bearerToken, guildID string) error {
	if bearerToken == "" {
		return ErrUnauthorized
	}

	guilds, errGuilds := o.Guilds(ctx, bearerToken)
	if errGuilds != nil {
		return errGuilds
	}

	for _, guild := range guilds {
		if guild.ID == guildID {
			if HasManagePermission(guild.Permissions) {
				return nil
			}
			return ErrForbidden
		}
	}
	return ErrForbidden
}

// ManagedGuilds returns the subset of the caller's guilds carrying manage
// permission.
func (o *Oracle) ManagedGuilds(ctx context.Context, bearerToken string) ([]discord.Guild, error) {
	guilds, errGuilds := o.Guilds(ctx, bearerToken)
	if errGuilds != nil {
		return nil, errGuilds
	}

	managed := make([]discord.Guild, 0, len(guilds))
	for _, guild := range guilds {
		if HasManagePermission(guild.Permissions) {
			managed = append(managed, guild)
		}
	}
	return managed, nil
}

// HasManagePermission tests the administrator and manage-guild bits of a
// decimal permission bitmask. The mask is parsed with arbitrary precision;
// unparseable input reads as no permission.
func HasManagePermission(permissions string) bool {
	bits, ok := new(big.Int).SetString(permissions, 10)
	if !ok || bits.Sign() < 0 {
		return false
	}
	mask := big.NewInt(discordgo.PermissionAdministrator | discordgo.PermissionManageServer)
	return new(big.Int).And(bits, mask).Sign() != 0
}
