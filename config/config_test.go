package config

import (
	"testing"

	"mindustry-bot/model"
)

func TestLoad(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token-123")
	t.Setenv("APP_ID", "app-456")
	t.Setenv("GUILD_ID", "guild-789")
	t.Setenv("LOG_WEBHOOK_URL", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("SWEEP_INTERVAL_MINUTES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BotToken != "token-123" {
		t.Errorf("expected bot token to be loaded, got %q", cfg.BotToken)
	}
	if cfg.AppID != "app-456" {
		t.Errorf("expected app id to be loaded, got %q", cfg.AppID)
	}
	if cfg.GuildID != "guild-789" {
		t.Errorf("expected guild id to be loaded, got %q", cfg.GuildID)
	}
	if cfg.DBPath != "data/database.db" {
		t.Errorf("expected default database path, got %q", cfg.DBPath)
	}
	if cfg.SweepIntervalMinutes != 5 {
		t.Errorf("expected default sweep interval, got %d", cfg.SweepIntervalMinutes)
	}
}

func TestLoadModerationDefaults(t *testing.T) {
	// No moderation.yaml in the directory: built-in defaults apply.
	cfg, err := loadModerationConfig(t.TempDir())
	if err != nil {
		t.Fatalf("loadModerationConfig failed: %v", err)
	}

	if cfg.WarnsUntilAction != 3 {
		t.Errorf("expected default warn threshold 3, got %d", cfg.WarnsUntilAction)
	}
	if cfg.ActionOnWarnLimit != model.ActionMute {
		t.Errorf("expected default auto action mute, got %s", cfg.ActionOnWarnLimit)
	}
	if cfg.DefaultDurationSeconds[model.ActionMute] != 86400 {
		t.Errorf("expected default mute duration, got %d", cfg.DefaultDurationSeconds[model.ActionMute])
	}
}
