package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"mindustry-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables and the
// moderation settings file.
func Load() (*model.Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := os.Getenv("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	guildID := os.Getenv("GUILD_ID")
	if guildID == "" {
		log.Println("Warning: GUILD_ID not set, commands will be registered globally")
	}

	logWebhookURL := os.Getenv("LOG_WEBHOOK_URL")
	if logWebhookURL == "" {
		log.Println("Warning: LOG_WEBHOOK_URL not set, audit logging will be disabled")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/database.db"
	}

	sweepIntervalStr := os.Getenv("SWEEP_INTERVAL_MINUTES")
	if sweepIntervalStr == "" {
		sweepIntervalStr = "5"
	}
	sweepInterval, err := strconv.Atoi(sweepIntervalStr)
	if err != nil {
		log.Printf("Warning: Invalid SWEEP_INTERVAL_MINUTES value, using default of 5. Error: %v", err)
		sweepInterval = 5
	}

	moderation, err := loadModerationConfig("data")
	if err != nil {
		return nil, err
	}

	return &model.Config{
		BotToken:             token,
		AppID:                appID,
		GuildID:              guildID,
		LogWebhookURL:        logWebhookURL,
		DBPath:               dbPath,
		Moderation:           moderation,
		SweepIntervalMinutes: sweepInterval,
	}, nil
}

// loadModerationConfig reads moderation.yaml from the given directory,
// falling back to built-in defaults when the file is absent.
func loadModerationConfig(dir string) (model.ModerationConfig, error) {
	v := viper.New()
	v.SetConfigName("moderation")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("warns_until_action", 3)
	v.SetDefault("action_on_warn_limit", string(model.ActionMute))
	v.SetDefault("action_on_warn_duration_seconds", 86400)
	v.SetDefault("default_duration_seconds", map[string]int64{
		string(model.ActionMute):      86400,
		string(model.ActionBan):       604800,
		string(model.ActionWarn):      2592000,
		string(model.ActionVoiceMute): 86400,
		string(model.ActionBlacklist): 2592000,
	})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return model.ModerationConfig{}, fmt.Errorf("failed to read moderation config: %w", err)
		}
		log.Printf("Warning: moderation.yaml not found in %s, using defaults.", dir)
	}

	var cfg model.ModerationConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return model.ModerationConfig{}, fmt.Errorf("failed to parse moderation config: %w", err)
	}

	if !cfg.ActionOnWarnLimit.Valid() || !cfg.ActionOnWarnLimit.Stackable() {
		return model.ModerationConfig{}, fmt.Errorf("invalid action_on_warn_limit: %q", cfg.ActionOnWarnLimit)
	}

	return cfg, nil
}
