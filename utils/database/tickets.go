package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"mindustry-bot/model"
)

// LogTicketOpen records a newly opened support channel and returns the ticket
// id. The opener is resolved through the Discord identity namespace, created
// on first sight.
func (s *Store) LogTicketOpen(openerDiscordID, channelID, ticketType, offenderIdentifier string) (int64, error) {
	userID, err := s.CreateUser(openerDiscordID, "")
	if err != nil {
		return 0, err
	}

	result, err := s.db.Exec(
		`INSERT INTO tickets (user_id, channel_id, status, created_at, ticket_type, offender_identifier)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, channelID, model.TicketOpen, s.timestamp(), nullable(ticketType), nullable(offenderIdentifier),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to log open ticket for channel %s: %w", channelID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for ticket: %w", err)
	}
	log.Printf("Logged new OPEN ticket for channel %s, type: %s, offender_identifier: %s", channelID, ticketType, offenderIdentifier)
	return id, nil
}

// LogTicketClose flips a ticket to CLOSED and attaches the archive log
// message. The log reference may be a full message URL; only its trailing id
// is stored.
func (s *Store) LogTicketClose(channelID, logMessageURL string) error {
	logMessageID := extractMessageID(logMessageURL)
	result, err := s.db.Exec(
		"UPDATE tickets SET status = ?, log_message_id = ? WHERE channel_id = ?",
		model.TicketClosed, logMessageID, channelID,
	)
	if err != nil {
		return fmt.Errorf("failed to log closed ticket for channel %s: %w", channelID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for ticket channel %s: %w", channelID, err)
	}
	if affected == 0 {
		return fmt.Errorf("no ticket found for channel %s", channelID)
	}
	log.Printf("Logged CLOSED ticket for channel %s with log message %s", channelID, logMessageID)
	return nil
}

// extractMessageID returns the trailing path segment of a Discord message
// URL, or the input unchanged when it is already a bare id.
func extractMessageID(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

// GetTicketIDByChannel returns the internal ticket id for a channel, or 0
// when no ticket was logged for it.
func (s *Store) GetTicketIDByChannel(channelID string) (int64, error) {
	var id int64
	err := s.db.Get(&id, "SELECT id FROM tickets WHERE channel_id = ?", channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get ticket for channel %s: %w", channelID, err)
	}
	return id, nil
}

// GetTicketByChannel returns the full ticket row for a channel, or nil when
// none exists.
func (s *Store) GetTicketByChannel(channelID string) (*model.Ticket, error) {
	var ticket model.Ticket
	err := s.db.Get(&ticket, "SELECT * FROM tickets WHERE channel_id = ?", channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket for channel %s: %w", channelID, err)
	}
	return &ticket, nil
}

// TicketHasPunishment reports whether any ledger entry references the
// ticket. Complaint tickets yield at most one disciplinary outcome; the
// command layer refuses a second punishment when this returns true.
func (s *Store) TicketHasPunishment(ticketID int64) (bool, error) {
	if ticketID == 0 {
		return false, nil
	}
	var exists int
	err := s.db.Get(&exists, "SELECT 1 FROM user_actions WHERE ticket_id = ? LIMIT 1", ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check punishments for ticket %d: %w", ticketID, err)
	}
	return true, nil
}

// GetPunishmentLogIDForTicket returns the announcement message id of the
// most recent punishment issued in a ticket, or "" when there is none.
func (s *Store) GetPunishmentLogIDForTicket(ticketID int64) (string, error) {
	if ticketID == 0 {
		return "", nil
	}
	var logMessageID string
	err := s.db.Get(&logMessageID,
		`SELECT log_message_id FROM user_actions
		 WHERE ticket_id = ? AND log_message_id IS NOT NULL
		 ORDER BY time DESC LIMIT 1`,
		ticketID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get punishment log message for ticket %d: %w", ticketID, err)
	}
	return logMessageID, nil
}

// FindMindustryComplaintsByNickname returns the archive log message ids of
// closed Mindustry complaints filed against the given in-game nickname.
// Used when a later appeal references the same name.
func (s *Store) FindMindustryComplaintsByNickname(nickname string) ([]string, error) {
	if nickname == "" {
		return nil, nil
	}
	var logMessageIDs []string
	err := s.db.Select(&logMessageIDs,
		`SELECT log_message_id FROM tickets
		 WHERE ticket_type = ? AND offender_identifier = ?
		   AND status = ? AND log_message_id IS NOT NULL`,
		model.TicketTypeMindustryComplaint, nickname, model.TicketClosed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find complaints for nickname %s: %w", nickname, err)
	}
	return logMessageIDs, nil
}
