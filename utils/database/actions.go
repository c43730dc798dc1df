package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"mindustry-bot/model"
)

// ActionParams describes a new ledger entry. DurationSeconds and ExpiresAt
// must be present together or absent together; absent means a permanent
// action.
type ActionParams struct {
	UserID          int64
	PerformedBy     int64
	ActionType      model.ActionType
	TicketID        int64 // 0 means no linked ticket
	Role            string
	Reason          string
	DurationSeconds int64 // 0 means permanent
	ExpiresAt       time.Time
}

// AddAction appends a new row to the user_actions ledger and returns its id.
// The row starts out active.
func (s *Store) AddAction(p ActionParams) (int64, error) {
	if !p.ActionType.Valid() {
		return 0, fmt.Errorf("unknown action type: %q", p.ActionType)
	}
	if (p.DurationSeconds == 0) != p.ExpiresAt.IsZero() {
		return 0, fmt.Errorf("duration and expiry must be set together for %s", p.ActionType)
	}

	var expiresAt, role, reason interface{}
	var duration, ticketID interface{}
	if p.DurationSeconds != 0 {
		duration = p.DurationSeconds
		expiresAt = formatTime(p.ExpiresAt)
	}
	if p.TicketID != 0 {
		ticketID = p.TicketID
	}
	role = nullable(p.Role)
	reason = nullable(p.Reason)

	result, err := s.db.Exec(
		`INSERT INTO user_actions
		 (user_id, performed_by, action_type, ticket_id, role, reason, time, duration_seconds, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.PerformedBy, p.ActionType, ticketID, role, reason, s.timestamp(), duration, expiresAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s for user_id %d: %w", p.ActionType, p.UserID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	log.Printf("Added %s for user_id %d by user_id %d", p.ActionType, p.UserID, p.PerformedBy)
	return id, nil
}

// GetActivePunishment returns the most recent active action of the given
// kind for a user, or nil when there is none. Under the stacking policy at
// most one such row exists per (user, kind).
func (s *Store) GetActivePunishment(userID int64, actionType model.ActionType) (*model.ActivePunishment, error) {
	var punishment model.ActivePunishment
	err := s.db.Get(&punishment,
		`SELECT id, expires_at FROM user_actions
		 WHERE user_id = ? AND action_type = ? AND is_active = 1
		 ORDER BY time DESC LIMIT 1`,
		userID, actionType,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active %s for user_id %d: %w", actionType, userID, err)
	}
	return &punishment, nil
}

// GetActionByID returns a single ledger row by its primary key.
func (s *Store) GetActionByID(id int64) (*model.UserAction, error) {
	var action model.UserAction
	err := s.db.Get(&action, "SELECT * FROM user_actions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get action by id %d: %w", id, err)
	}
	return &action, nil
}

// DeactivateAction turns a ledger row inactive without recording an audit
// trail. Used only when an action is superseded by a longer one or its
// timer has expired, never for user-visible revocations.
func (s *Store) DeactivateAction(actionID int64) error {
	_, err := s.db.Exec("UPDATE user_actions SET is_active = 0 WHERE id = ?", actionID)
	if err != nil {
		return fmt.Errorf("failed to deactivate action %d: %w", actionID, err)
	}
	log.Printf("Silently deactivated action_id %d due to being superseded.", actionID)
	return nil
}

// RevokeAction deactivates an action with a full audit trail. The update is
// conditional on the row still being active, so a second revocation of the
// same action reports false instead of overwriting the trail.
func (s *Store) RevokeAction(actionID, revokedBy int64, reason string) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE user_actions
		 SET is_active = 0, revoked_by = ?, revocation_reason = ?, revocation_time = ?
		 WHERE id = ? AND is_active = 1`,
		revokedBy, reason, s.timestamp(), actionID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to revoke action %d: %w", actionID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected for action %d: %w", actionID, err)
	}
	if affected == 0 {
		return false, nil
	}
	log.Printf("Revoked action ID %d by user_id %d", actionID, revokedBy)
	return true, nil
}

// CountActiveWarns returns the number of currently-active warnings for a user.
func (s *Store) CountActiveWarns(userID int64) (int, error) {
	var count int
	err := s.db.Get(&count,
		`SELECT COUNT(*) FROM user_actions
		 WHERE user_id = ? AND action_type = 'warn' AND is_active = 1`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count active warns for user_id %d: %w", userID, err)
	}
	return count, nil
}

// DeactivateAllWarns clears every active warning for a user in one sweep.
// This is the systemic reset after the warn limit triggers, not an
// individual pardon, so no revocation trail is written.
func (s *Store) DeactivateAllWarns(userID int64) error {
	_, err := s.db.Exec(
		`UPDATE user_actions SET is_active = 0
		 WHERE user_id = ? AND action_type = 'warn' AND is_active = 1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate warns for user_id %d: %w", userID, err)
	}
	log.Printf("Deactivated all active warnings for user_id %d due to reaching the warn limit.", userID)
	return nil
}

// UpdateActionLogMessage attaches the id of the public announcement message
// to a ledger row after the fact. Returns false when the row does not exist.
func (s *Store) UpdateActionLogMessage(actionID int64, logMessageID string) (bool, error) {
	result, err := s.db.Exec(
		"UPDATE user_actions SET log_message_id = ? WHERE id = ?",
		logMessageID, actionID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update log message for action %d: %w", actionID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected for action %d: %w", actionID, err)
	}
	return affected > 0, nil
}

// GetExpiredActivePunishments returns every active timed action whose expiry
// has passed, oldest first. The sweeper undoes their side effects and then
// deactivates them.
func (s *Store) GetExpiredActivePunishments(asOf time.Time) ([]model.UserAction, error) {
	var actions []model.UserAction
	err := s.db.Select(&actions,
		`SELECT * FROM user_actions
		 WHERE is_active = 1 AND expires_at IS NOT NULL AND expires_at <= ?
		 ORDER BY expires_at`,
		formatTime(asOf),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expired punishments: %w", err)
	}
	return actions, nil
}

// GetActivePunishmentInfos returns the ticket-joined view of every active
// action against a user, newest first.
func (s *Store) GetActivePunishmentInfos(userID int64) ([]model.PunishmentInfo, error) {
	var infos []model.PunishmentInfo
	err := s.db.Select(&infos,
		`SELECT ua.action_type, t.log_message_id, t.channel_id
		 FROM user_actions AS ua
		 INNER JOIN tickets AS t ON ua.ticket_id = t.id
		 WHERE ua.user_id = ? AND ua.is_active = 1
		 ORDER BY ua.time DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get active punishment infos for user_id %d: %w", userID, err)
	}
	return infos, nil
}

// GetActiveDiscordComplaintInfos is GetActivePunishmentInfos restricted to
// Discord complaint tickets.
func (s *Store) GetActiveDiscordComplaintInfos(userID int64) ([]model.PunishmentInfo, error) {
	var infos []model.PunishmentInfo
	err := s.db.Select(&infos,
		`SELECT ua.action_type, t.log_message_id, t.channel_id
		 FROM user_actions AS ua
		 INNER JOIN tickets AS t ON ua.ticket_id = t.id
		 WHERE ua.user_id = ? AND ua.is_active = 1 AND t.ticket_type = ?
		 ORDER BY ua.time DESC`,
		userID, model.TicketTypeDiscordComplaint,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get active complaint infos for user_id %d: %w", userID, err)
	}
	return infos, nil
}
