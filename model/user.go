package model

import (
	"database/sql"
	"fmt"
)

// Platform identifies the identity namespace an external user id belongs to.
type Platform string

const (
	PlatformDiscord   Platform = "discord"
	PlatformMindustry Platform = "mindustry"
)

// ParsePlatform validates a platform string coming from the command layer.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformDiscord, PlatformMindustry:
		return Platform(s), nil
	}
	return "", fmt.Errorf("unsupported platform: %q", s)
}

// User is the durable internal identity behind one or both external ids.
// At least one of DiscordID / MindustryID is always set.
type User struct {
	ID          int64          `db:"id"`
	DiscordID   sql.NullString `db:"discord_id"`
	MindustryID sql.NullString `db:"mindustry_id"`
	CreatedAt   string         `db:"created_at"`
}

// UserProfile is the full history view of a user: every action against them
// grouped by kind, plus actions they performed on others.
type UserProfile struct {
	User
	Actions      map[ActionType][]UserAction
	ActionsTaken []UserAction
}
