package security

import (
	"errors"
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	token, errSign := GenerateSession("secret", "1234", "tester", "avatarhash", "access-token", time.Hour)
	if errSign != nil {
		t.Fatalf("generate session: %v", errSign)
	}

	claims, errParse := ParseSession("secret", token)
	if errParse != nil {
		t.Fatalf("parse session: %v", errParse)
	}
	if claims.UserID != "1234" || claims.Username != "tester" {
		t.Fatalf("unexpected identity: %+v", claims)
	}
	if claims.AccessToken != "access-token" {
		t.Fatalf("expected access token preserved, got %q", claims.AccessToken)
	}
}

func TestSessionWrongSecretRejected(t *testing.T) {
	token, errSign := GenerateSession("secret", "1234", "tester", "", "access-token", time.Hour)
	if errSign != nil {
		t.Fatalf("generate session: %v", errSign)
	}

	if _, errParse := ParseSession("other-secret", token); !errors.Is(errParse, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errParse)
	}
}

func TestSessionExpiryRejected(t *testing.T) {
	token, errSign := GenerateSession("secret", "1234", "tester", "", "access-token", -time.Minute)
	if errSign != nil {
		t.Fatalf("generate session: %v", errSign)
	}

	if _, errParse := ParseSession("secret", token); !errors.Is(errParse, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", errParse)
	}
}

func TestSessionGarbageRejected(t *testing.T) {
	if _, errParse := ParseSession("secret", "not-a-jwt"); !errors.Is(errParse, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errParse)
	}
}
