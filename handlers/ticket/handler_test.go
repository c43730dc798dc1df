package ticket

import (
	"path/filepath"
	"strings"
	"testing"

	"mindustry-bot/model"
	"mindustry-bot/utils/database"
)

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	db, err := database.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return database.New(db, nil)
}

func TestPriorComplaintNote(t *testing.T) {
	store := newTestStore(t)

	offenderID, err := store.CreateUser("offender-1", "")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	ticketID, err := store.LogTicketOpen("opener-1", "channel-1", model.TicketTypeDiscordComplaint, "offender-1")
	if err != nil {
		t.Fatalf("LogTicketOpen failed: %v", err)
	}
	if _, err := store.AddAction(database.ActionParams{
		UserID:      offenderID,
		PerformedBy: offenderID,
		ActionType:  model.ActionKick,
		TicketID:    ticketID,
	}); err != nil {
		t.Fatalf("AddAction failed: %v", err)
	}

	note := priorComplaintNote(store, model.TicketTypeDiscordComplaint, "offender-1")
	if note == "" {
		t.Fatal("expected a note about the existing complaint punishment")
	}
	if !strings.Contains(note, "channel-1") {
		t.Fatalf("expected the note to reference the originating channel, got %q", note)
	}
}

func TestPriorComplaintNoteEmptyCases(t *testing.T) {
	store := newTestStore(t)

	if note := priorComplaintNote(store, model.TicketTypeMindustryComplaint, "offender-1"); note != "" {
		t.Fatalf("expected no note for non-discord ticket types, got %q", note)
	}
	if note := priorComplaintNote(store, model.TicketTypeDiscordComplaint, ""); note != "" {
		t.Fatalf("expected no note without an offender, got %q", note)
	}
	if note := priorComplaintNote(store, model.TicketTypeDiscordComplaint, "never-seen"); note != "" {
		t.Fatalf("expected no note for an unseen offender, got %q", note)
	}
}
