package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"mindustry-bot/model"
)

// platformColumn maps an identity namespace to its users column.
func platformColumn(platform model.Platform) (string, error) {
	switch platform {
	case model.PlatformDiscord:
		return "discord_id", nil
	case model.PlatformMindustry:
		return "mindustry_id", nil
	}
	return "", fmt.Errorf("unsupported platform: %q", platform)
}

// CreateUser returns the internal id for the given external ids, inserting a
// new row on first sight. At least one id must be provided. Creation is
// idempotent: a concurrent insert losing the UNIQUE race re-queries and
// returns the winner's id.
func (s *Store) CreateUser(discordID, mindustryID string) (int64, error) {
	if discordID == "" && mindustryID == "" {
		return 0, errors.New("at least one of discord_id or mindustry_id must be provided")
	}

	if id, err := s.lookupUser(discordID, mindustryID); err != nil {
		return 0, err
	} else if id != 0 {
		return id, nil
	}

	result, err := s.db.Exec(
		`INSERT INTO users (discord_id, mindustry_id, created_at) VALUES (?, ?, ?)`,
		nullable(discordID), nullable(mindustryID), s.timestamp(),
	)
	if err != nil {
		// Lost the race against a concurrent insert for the same external
		// id. The winner's row is the canonical one.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			if id, lookupErr := s.lookupUser(discordID, mindustryID); lookupErr == nil && id != 0 {
				return id, nil
			}
		}
		return 0, fmt.Errorf("failed to insert user (discord_id=%s, mindustry_id=%s): %w", discordID, mindustryID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for new user: %w", err)
	}
	log.Printf("Created new user: discord_id=%s, mindustry_id=%s", discordID, mindustryID)
	return id, nil
}

func (s *Store) lookupUser(discordID, mindustryID string) (int64, error) {
	query := "SELECT id FROM users WHERE "
	var clauses []string
	var args []interface{}
	if discordID != "" {
		clauses = append(clauses, "discord_id = ?")
		args = append(args, discordID)
	}
	if mindustryID != "" {
		clauses = append(clauses, "mindustry_id = ?")
		args = append(args, mindustryID)
	}
	query += strings.Join(clauses, " OR ")

	var id int64
	err := s.db.Get(&id, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}
	return id, nil
}

// GetUserInternalID returns the internal id for an external id, or 0 when the
// user has never been seen. Unlike CreateUser it never inserts.
func (s *Store) GetUserInternalID(platform model.Platform, externalID string) (int64, error) {
	column, err := platformColumn(platform)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.Get(&id, fmt.Sprintf("SELECT id FROM users WHERE %s = ?", column), externalID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get internal id for %s user %s: %w", platform, externalID, err)
	}
	return id, nil
}

// ResolveUserIDs resolves the punishment target on the given platform and the
// performer (always a Discord staff member), creating either on first sight.
func (s *Store) ResolveUserIDs(platform model.Platform, targetID, performerID string) (int64, int64, error) {
	var target int64
	var err error
	switch platform {
	case model.PlatformDiscord:
		target, err = s.CreateUser(targetID, "")
	case model.PlatformMindustry:
		target, err = s.CreateUser("", targetID)
	default:
		return 0, 0, fmt.Errorf("unsupported platform: %q", platform)
	}
	if err != nil {
		return 0, 0, err
	}

	performer, err := s.CreateUser(performerID, "")
	if err != nil {
		return 0, 0, err
	}
	return target, performer, nil
}

// GetFullUserData returns the complete profile for an external id: the user
// row, every action against them grouped by kind, and the actions they
// performed on others. Returns nil when the user has never been seen.
func (s *Store) GetFullUserData(platform model.Platform, externalID string) (*model.UserProfile, error) {
	internalID, err := s.GetUserInternalID(platform, externalID)
	if err != nil {
		return nil, err
	}
	if internalID == 0 {
		return nil, nil
	}

	var user model.User
	if err := s.db.Get(&user, "SELECT * FROM users WHERE id = ?", internalID); err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", internalID, err)
	}

	profile := &model.UserProfile{
		User:    user,
		Actions: make(map[model.ActionType][]model.UserAction),
	}

	var received []model.UserAction
	if err := s.db.Select(&received, "SELECT * FROM user_actions WHERE user_id = ? ORDER BY time", internalID); err != nil {
		return nil, fmt.Errorf("failed to get actions for user %d: %w", internalID, err)
	}
	for _, action := range received {
		profile.Actions[action.ActionType] = append(profile.Actions[action.ActionType], action)
	}

	if err := s.db.Select(&profile.ActionsTaken, "SELECT * FROM user_actions WHERE performed_by = ? ORDER BY time", internalID); err != nil {
		return nil, fmt.Errorf("failed to get actions taken by user %d: %w", internalID, err)
	}

	return profile, nil
}

// GetUserByInternalID returns the user row for an internal id, or nil when no
// such row exists.
func (s *Store) GetUserByInternalID(id int64) (*model.User, error) {
	var user model.User
	err := s.db.Get(&user, "SELECT * FROM users WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
