package discord

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// stubTransport answers every request with one canned response.
type stubTransport struct {
	status int
	body   string
}

func (s stubTransport) RoundTrip(_ *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newStubClient(t *testing.T, status int, body string) *Client {
	t.Helper()
	client, errNew := New("test-bot-token", "1000")
	if errNew != nil {
		t.Fatalf("new client: %v", errNew)
	}
	client.bot.Client = &http.Client{Transport: stubTransport{status: status, body: body}}
	return client
}

func TestGuildExistsMember(t *testing.T) {
	client := newStubClient(t, http.StatusOK, `{"id":"42","name":"guild"}`)

	exists, errCheck := client.GuildExists(context.Background(), "42")
	if errCheck != nil {
		t.Fatalf("guild exists: %v", errCheck)
	}
	if !exists {
		t.Fatal("expected membership")
	}
}

func TestGuildExistsAbsent(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound} {
		client := newStubClient(t, status, `{"message":"Unknown Guild","code":10004}`)

		exists, errCheck := client.GuildExists(context.Background(), "42")
		if errCheck != nil {
			t.Fatalf("status %d: guild exists: %v", status, errCheck)
		}
		if exists {
			t.Fatalf("status %d: expected absence", status)
		}
	}
}

func TestGuildExistsPropagatesServerErrors(t *testing.T) {
	client := newStubClient(t, http.StatusInternalServerError, `{"message":"oops"}`)

	exists, errCheck := client.GuildExists(context.Background(), "42")
	if exists {
		t.Fatal("expected no membership on upstream failure")
	}
	var statusErr *StatusError
	if !errors.As(errCheck, &statusErr) {
		t.Fatalf("expected StatusError, got %v", errCheck)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", statusErr.Code)
	}
}
