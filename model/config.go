package model

// ModerationConfig holds the tunable parts of the punishment engine. It is
// loaded from data/moderation.yaml and passed into the service explicitly.
type ModerationConfig struct {
	// WarnsUntilAction is the number of active warnings that triggers the
	// automatic escalation punishment.
	WarnsUntilAction int `mapstructure:"warns_until_action"`
	// ActionOnWarnLimit is the kind of punishment issued automatically when
	// the warning threshold is reached (mute or ban).
	ActionOnWarnLimit ActionType `mapstructure:"action_on_warn_limit"`
	// ActionOnWarnDurationSeconds is the duration of the automatic punishment.
	ActionOnWarnDurationSeconds int64 `mapstructure:"action_on_warn_duration_seconds"`

	// DefaultDurationSeconds supplies a duration per kind when the command
	// did not specify one.
	DefaultDurationSeconds map[ActionType]int64 `mapstructure:"default_duration_seconds"`

	// Roles maps punishment kinds to the Discord role applied as the
	// visible side effect. Blacklist uses a guild ban instead of a role.
	Roles map[ActionType]string `mapstructure:"roles"`

	// ModeratorRoleIDs lists the roles allowed to run moderation commands.
	// An empty list lets anyone through and defers to Discord's own
	// command permissions.
	ModeratorRoleIDs []string `mapstructure:"moderator_role_ids"`
}

// Config stores the application configuration.
type Config struct {
	BotToken      string
	AppID         string
	GuildID       string
	LogWebhookURL string
	DBPath        string

	Moderation ModerationConfig

	// SweepIntervalMinutes controls how often the expiry sweeper runs.
	SweepIntervalMinutes int
}
