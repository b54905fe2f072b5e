package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Discord  DiscordConfig  `yaml:"discord"`
	Session  SessionConfig  `yaml:"session"`
	Twitch   TwitchConfig   `yaml:"twitch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Listen       string   `yaml:"listen"`        // Listen address, e.g. ":8080".
	AllowOrigins []string `yaml:"allow_origins"` // CORS origins for the dashboard frontend.
}

// DatabaseConfig holds persistence settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // SQLite path or PostgreSQL DSN.
}

// DiscordConfig holds Discord API credentials.
type DiscordConfig struct {
	BotToken     string `yaml:"bot_token"`     // Bot token for guild channel/role lookups.
	ClientID     string `yaml:"client_id"`     // OAuth application client id.
	ClientSecret string `yaml:"client_secret"` // OAuth application client secret.
	RedirectURL  string `yaml:"redirect_url"`  // OAuth callback URL.
}

// SessionConfig holds dashboard session settings.
type SessionConfig struct {
	JWTSecret string        `yaml:"jwt_secret"` // HS256 signing secret.
	TTL       time.Duration `yaml:"ttl"`        // Session lifetime.
}

// TwitchConfig holds optional Twitch Helix credentials for avatar lookups.
type TwitchConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`       // logrus level name.
	File       string `yaml:"file"`        // Log file path; empty logs to stderr.
	MaxSizeMB  int    `yaml:"max_size_mb"` // Rotation threshold.
	MaxBackups int    `yaml:"max_backups"` // Rotated files to keep.
}

// Default session lifetime when the config omits one.
const defaultSessionTTL = 12 * time.Hour

// Load reads a YAML config file and applies environment overrides.
func Load(path string) (Config, error) {
	var cfg Config
	if strings.TrimSpace(path) != "" {
		data, errRead := os.ReadFile(path)
		if errRead != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, errRead)
		}
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
		}
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if errValidate := cfg.validate(); errValidate != nil {
		return Config{}, errValidate
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Server.Listen, "ZIIN_LISTEN")
	overrideString(&cfg.Database.DSN, "ZIIN_DATABASE_DSN")
	overrideString(&cfg.Discord.BotToken, "DISCORD_TOKEN")
	overrideString(&cfg.Discord.ClientID, "DISCORD_CLIENT_ID")
	overrideString(&cfg.Discord.ClientSecret, "DISCORD_CLIENT_SECRET")
	overrideString(&cfg.Discord.RedirectURL, "DISCORD_REDIRECT_URL")
	overrideString(&cfg.Session.JWTSecret, "ZIIN_JWT_SECRET")
	overrideString(&cfg.Twitch.ClientID, "TWITCH_CLIENT_ID")
	overrideString(&cfg.Twitch.ClientSecret, "TWITCH_CLIENT_SECRET")
	overrideString(&cfg.Logging.Level, "ZIIN_LOG_LEVEL")
}

func overrideString(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			*target = trimmed
		}
	}
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = ":8080"
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		cfg.Database.DSN = "data/local.db"
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = defaultSessionTTL
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
	}
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Discord.BotToken) == "" {
		return fmt.Errorf("config: discord.bot_token is required")
	}
	if strings.TrimSpace(c.Discord.ClientID) == "" {
		return fmt.Errorf("config: discord.client_id is required")
	}
	if strings.TrimSpace(c.Discord.ClientSecret) == "" {
		return fmt.Errorf("config: discord.client_secret is required")
	}
	if strings.TrimSpace(c.Session.JWTSecret) == "" {
		return fmt.Errorf("config: session.jwt_secret is required")
	}
	return nil
}

// HasTwitchCredentials reports whether Helix API credentials are configured.
func (c Config) HasTwitchCredentials() bool {
	return strings.TrimSpace(c.Twitch.ClientID) != "" && strings.TrimSpace(c.Twitch.ClientSecret) != ""
}
