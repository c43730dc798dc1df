package model

import "database/sql"

// ActionType is the closed set of ledger action kinds. The database schema
// carries a matching CHECK constraint, so an unknown kind fails on both sides.
type ActionType string

const (
	ActionPromotion ActionType = "promotion"
	ActionDemotion  ActionType = "demotion"
	ActionMute      ActionType = "mute"
	ActionBan       ActionType = "ban"
	ActionWarn      ActionType = "warn"
	ActionKick      ActionType = "kick"
	ActionVoiceMute ActionType = "voice_mute"
	ActionBlacklist ActionType = "blacklist"
)

// Valid reports whether t is one of the known action kinds.
func (t ActionType) Valid() bool {
	switch t {
	case ActionPromotion, ActionDemotion, ActionMute, ActionBan,
		ActionWarn, ActionKick, ActionVoiceMute, ActionBlacklist:
		return true
	}
	return false
}

// Stackable reports whether the stacking policy applies to t. Warns and kicks
// are always recorded independently; promotions and demotions are role
// history, not punishments with a live timer.
func (t ActionType) Stackable() bool {
	switch t {
	case ActionMute, ActionBan, ActionVoiceMute, ActionBlacklist:
		return true
	case ActionPromotion, ActionDemotion, ActionWarn, ActionKick:
		return false
	}
	return false
}

// RequiresDuration reports whether a duration must be supplied when
// recording t. Kicks are instantaneous; promotions and demotions may be
// permanent.
func (t ActionType) RequiresDuration() bool {
	switch t {
	case ActionMute, ActionBan, ActionWarn, ActionVoiceMute, ActionBlacklist:
		return true
	case ActionPromotion, ActionDemotion, ActionKick:
		return false
	}
	return false
}

// RecordStatus is the outcome of a ledger write attempt.
type RecordStatus string

const (
	StatusAdded   RecordStatus = "ADDED"
	StatusSkipped RecordStatus = "SKIPPED"
	StatusFailed  RecordStatus = "FAILED"
)

// UserAction represents a single row of the user_actions ledger.
// The table is append-mostly: rows are never deleted, and the only
// mutations are log-message attachment, silent deactivation (superseded or
// expired) and audited revocation.
type UserAction struct {
	ID               int64          `db:"id"`
	UserID           int64          `db:"user_id"`
	ActionType       ActionType     `db:"action_type"`
	PerformedBy      int64          `db:"performed_by"`
	TicketID         sql.NullInt64  `db:"ticket_id"`
	LogMessageID     sql.NullString `db:"log_message_id"`
	Role             sql.NullString `db:"role"`
	Reason           sql.NullString `db:"reason"`
	Time             string         `db:"time"`
	DurationSeconds  sql.NullInt64  `db:"duration_seconds"`
	ExpiresAt        sql.NullString `db:"expires_at"`
	IsActive         bool           `db:"is_active"`
	RevokedBy        sql.NullInt64  `db:"revoked_by"`
	RevocationReason sql.NullString `db:"revocation_reason"`
	RevocationTime   sql.NullString `db:"revocation_time"`
}

// ActivePunishment is the minimal view of an active ledger row used by the
// stacking policy and the revocation engine.
type ActivePunishment struct {
	ID        int64          `db:"id"`
	ExpiresAt sql.NullString `db:"expires_at"`
}

// PunishmentInfo is a ticket-joined view of an active action, used when a
// later appeal needs to point back at the original complaint.
type PunishmentInfo struct {
	ActionType   ActionType     `db:"action_type"`
	LogMessageID sql.NullString `db:"log_message_id"`
	ChannelID    string         `db:"channel_id"`
}
