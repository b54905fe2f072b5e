package perms

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Din0326/Ziin-Project/internal/discord"
)

// fakeFetcher serves canned guild lists and counts upstream calls.
type fakeFetcher struct {
	mu     sync.Mutex
	calls  int64
	guilds map[string][]discord.Guild
	err    error
	delay  time.Duration
}

func (f *fakeFetcher) UserGuilds(_ context.Context, bearerToken string) ([]discord.Guild, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.guilds[bearerToken], nil
}

func (f *fakeFetcher) callCount() int64 {
	return atomic.LoadInt64(&f.calls)
}

func managerGuild(id string) discord.Guild {
	return discord.Guild{ID: id, Name: "guild-" + id, Permissions: "8"}
}

func TestHasManagePermission(t *testing.T) {
	cases := []struct {
		permissions string
		want        bool
	}{
		{"8", true},
		{"32", true},
		{"40", true},
		{"0", false},
		{"16", false},
		{"2147483647", true},
		{"4611686018427387904", false},
		{"170141183460469231731687303715884105768", true},
		{"not-a-number", false},
		{"", false},
		{"-8", false},
	}
	for _, tc := range cases {
		if got := HasManagePermission(tc.permissions); got != tc.want {
			t.Fatalf("HasManagePermission(%q) = %v, want %v", tc.permissions, got, tc.want)
		}
	}
}

func TestOracleCachesGuildList(t *testing.T) {
	fetcher := &fakeFetcher{guilds: map[string][]discord.Guild{
		"token-a": {managerGuild("1")},
	}}
	oracle := NewOracle(fetcher, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		guilds, errGuilds := oracle.Guilds(ctx, "token-a")
		if errGuilds != nil {
			t.Fatalf("guilds call %d: %v", i, errGuilds)
		}
		if len(guilds) != 1 || guilds[0].ID != "1" {
			t.Fatalf("unexpected guild list: %v", guilds)
		}
	}
	if calls := fetcher.callCount(); calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls)
	}
}

func TestOracleExpiredEntryRefetches(t *testing.T) {
	now := time.Now()
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	fetcher := &fakeFetcher{guilds: map[string][]discord.Guild{
		"token-a": {managerGuild("1")},
	}}
	oracle := NewOracle(fetcher, clock)
	ctx := context.Background()

	if _, errGuilds := oracle.Guilds(ctx, "token-a"); errGuilds != nil {
		t.Fatalf("first fetch: %v", errGuilds)
	}

	mu.Lock()
	now = now.Add(guildCacheTTL + time.Second)
	mu.Unlock()

	if _, errGuilds := oracle.Guilds(ctx, "token-a"); errGuilds != nil {
		t.Fatalf("second fetch: %v", errGuilds)
	}
	if calls := fetcher.callCount(); calls != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", calls)
	}
}

func TestOracleCoalescesConcurrentFetches(t *testing.T) {
	fetcher := &fakeFetcher{
		guilds: map[string][]discord.Guild{"token-a": {managerGuild("1")}},
		delay:  20 * time.Millisecond,
	}
	oracle := NewOracle(fetcher, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, errGuilds := oracle.Guilds(ctx, "token-a"); errGuilds != nil {
				t.Errorf("concurrent fetch: %v", errGuilds)
			}
		}()
	}
	wg.Wait()

	if calls := fetcher.callCount(); calls != 1 {
		t.Fatalf("expected coalesced single upstream call, got %d", calls)
	}
}

func TestOracleDoesNotCacheFailures(t *testing.T) {
	fetcher := &fakeFetcher{err: &discord.StatusError{Code: 500}}
	oracle := NewOracle(fetcher, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, errGuilds := oracle.Guilds(ctx, "token-a")
		var upstreamErr *UpstreamError
		if !errors.As(errGuilds, &upstreamErr) || upstreamErr.Status != 500 {
			t.Fatalf("expected upstream error with status 500, got %v", errGuilds)
		}
	}
	if calls := fetcher.callCount(); calls != 2 {
		t.Fatalf("expected no caching of failures, got %d calls", calls)
	}

	fetcher.mu.Lock()
	fetcher.err = nil
	fetcher.guilds = map[string][]discord.Guild{"token-a": {managerGuild("1")}}
	fetcher.mu.Unlock()

	guilds, errGuilds := oracle.Guilds(ctx, "token-a")
	if errGuilds != nil {
		t.Fatalf("fetch after recovery: %v", errGuilds)
	}
	if len(guilds) != 1 {
		t.Fatalf("expected recovered guild list, got %v", guilds)
	}
}

func TestAuthorize(t *testing.T) {
	fetcher := &fakeFetcher{guilds: map[string][]discord.Guild{
		"token-a": {
			managerGuild("1"),
			{ID: "2", Name: "viewer-guild", Permissions: "0"},
		},
	}}
	oracle := NewOracle(fetcher, nil)
	ctx := context.Background()

	if errAuth := oracle.Authorize(ctx, "", "1"); !errors.Is(errAuth, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", errAuth)
	}
	if errAuth := oracle.Authorize(ctx, "token-a", "1"); errAuth != nil {
		t.Fatalf("expected authorized, got %v", errAuth)
	}
	if errAuth := oracle.Authorize(ctx, "token-a", "2"); !errors.Is(errAuth, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for viewer guild, got %v", errAuth)
	}
	if errAuth := oracle.Authorize(ctx, "token-a", "999"); !errors.Is(errAuth, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unknown guild, got %v", errAuth)
	}
}

func TestManagedGuildsFiltersByPermission(t *testing.T) {
	fetcher := &fakeFetcher{guilds: map[string][]discord.Guild{
		"token-a": {
			managerGuild("1"),
			{ID: "2", Permissions: "0"},
			{ID: "3", Permissions: "32"},
		},
	}}
	oracle := NewOracle(fetcher, nil)

	managed, errGuilds := oracle.ManagedGuilds(context.Background(), "token-a")
	if errGuilds != nil {
		t.Fatalf("managed guilds: %v", errGuilds)
	}
	if len(managed) != 2 || managed[0].ID != "1" || managed[1].ID != "3" {
		t.Fatalf("unexpected managed list: %v", managed)
	}
}
