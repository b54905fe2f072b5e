package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if errWrite := os.WriteFile(path, []byte(content), 0644); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTestConfig(t, `
discord:
  bot_token: bot-token
  client_id: "1000"
  client_secret: secret
session:
  jwt_secret: jwt-secret
`)

	cfg, errLoad := Load(path)
	if errLoad != nil {
		t.Fatalf("load config: %v", errLoad)
	}
	if cfg.Server.Listen != ":8080" {
		t.Fatalf("expected default listen address, got %q", cfg.Server.Listen)
	}
	if cfg.Database.DSN == "" {
		t.Fatalf("expected default database dsn")
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Fatalf("expected default session ttl, got %v", cfg.Session.TTL)
	}
	if cfg.HasTwitchCredentials() {
		t.Fatalf("expected no twitch credentials")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeTestConfig(t, `
discord:
  bot_token: file-token
  client_id: "1000"
  client_secret: secret
session:
  jwt_secret: jwt-secret
`)
	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("ZIIN_LISTEN", ":9090")
	t.Setenv("TWITCH_CLIENT_ID", "tw-id")
	t.Setenv("TWITCH_CLIENT_SECRET", "tw-secret")

	cfg, errLoad := Load(path)
	if errLoad != nil {
		t.Fatalf("load config: %v", errLoad)
	}
	if cfg.Discord.BotToken != "env-token" {
		t.Fatalf("expected env override for bot token, got %q", cfg.Discord.BotToken)
	}
	if cfg.Server.Listen != ":9090" {
		t.Fatalf("expected env override for listen, got %q", cfg.Server.Listen)
	}
	if !cfg.HasTwitchCredentials() {
		t.Fatalf("expected twitch credentials from env")
	}
}

func TestLoadRejectsIncompleteConfig(t *testing.T) {
	path := writeTestConfig(t, `
discord:
  client_id: "1000"
`)

	if _, errLoad := Load(path); errLoad == nil {
		t.Fatalf("expected validation error for missing credentials")
	}
}
