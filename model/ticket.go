package model

import "database/sql"

// TicketStatus is the lifecycle state of a support conversation.
type TicketStatus string

const (
	TicketOpen   TicketStatus = "OPEN"
	TicketClosed TicketStatus = "CLOSED"
)

// Well-known ticket types used by the complaint cross-referencing queries.
const (
	TicketTypeDiscordComplaint   = "Discord-Complaint"
	TicketTypeMindustryComplaint = "Mindustry-Complaint"
)

// Ticket represents a support conversation. Tickets are never deleted;
// closing attaches the archive log message and flips the status.
type Ticket struct {
	ID                 int64          `db:"id"`
	UserID             int64          `db:"user_id"`
	ChannelID          string         `db:"channel_id"`
	LogMessageID       sql.NullString `db:"log_message_id"`
	Status             TicketStatus   `db:"status"`
	CreatedAt          string         `db:"created_at"`
	TicketType         sql.NullString `db:"ticket_type"`
	OffenderIdentifier sql.NullString `db:"offender_identifier"`
}
