package database

import (
	"path/filepath"
	"testing"
	"time"

	"mindustry-bot/model"
)

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

func newTestStore(t *testing.T, clock Clock) *Store {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, clock)
}

func TestCreateUserIdempotent(t *testing.T) {
	store := newTestStore(t, nil)

	first, err := store.CreateUser("discord-1", "")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	second, err := store.CreateUser("discord-1", "")
	if err != nil {
		t.Fatalf("CreateUser (repeat) failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected same internal id for repeated creation, got %d and %d", first, second)
	}

	other, err := store.CreateUser("discord-2", "")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if other == first {
		t.Fatalf("distinct external ids must get distinct internal ids")
	}
}

func TestCreateUserRequiresAnID(t *testing.T) {
	store := newTestStore(t, nil)
	if _, err := store.CreateUser("", ""); err == nil {
		t.Fatal("expected error when both external ids are empty")
	}
}

func TestIdentityNamespacesAreSeparate(t *testing.T) {
	store := newTestStore(t, nil)

	// The same string in the two namespaces must never collapse into one
	// identity.
	discordUser, err := store.CreateUser("12345", "")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	mindustryUser, err := store.CreateUser("", "12345")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if discordUser == mindustryUser {
		t.Fatalf("discord and mindustry identities collided on internal id %d", discordUser)
	}

	id, err := store.GetUserInternalID(model.PlatformDiscord, "12345")
	if err != nil {
		t.Fatalf("GetUserInternalID failed: %v", err)
	}
	if id != discordUser {
		t.Fatalf("expected discord lookup to return %d, got %d", discordUser, id)
	}
}

func TestGetUserInternalIDUnseen(t *testing.T) {
	store := newTestStore(t, nil)
	id, err := store.GetUserInternalID(model.PlatformDiscord, "never-seen")
	if err != nil {
		t.Fatalf("GetUserInternalID failed: %v", err)
	}
	if id != 0 {
		t.Fatalf("expected 0 for an unseen user, got %d", id)
	}
}

func TestTicketLifecycle(t *testing.T) {
	store := newTestStore(t, nil)

	ticketID, err := store.LogTicketOpen("opener-1", "channel-1", model.TicketTypeMindustryComplaint, "Griefer")
	if err != nil {
		t.Fatalf("LogTicketOpen failed: %v", err)
	}

	gotID, err := store.GetTicketIDByChannel("channel-1")
	if err != nil {
		t.Fatalf("GetTicketIDByChannel failed: %v", err)
	}
	if gotID != ticketID {
		t.Fatalf("expected ticket id %d, got %d", ticketID, gotID)
	}

	// Closing stores only the trailing segment of a full message URL.
	url := "https://discord.com/channels/1/2/987654321"
	if err := store.LogTicketClose("channel-1", url); err != nil {
		t.Fatalf("LogTicketClose failed: %v", err)
	}

	ticket, err := store.GetTicketByChannel("channel-1")
	if err != nil {
		t.Fatalf("GetTicketByChannel failed: %v", err)
	}
	if ticket == nil {
		t.Fatal("expected a ticket row")
	}
	if ticket.Status != model.TicketClosed {
		t.Fatalf("expected status %s, got %s", model.TicketClosed, ticket.Status)
	}
	if !ticket.LogMessageID.Valid || ticket.LogMessageID.String != "987654321" {
		t.Fatalf("expected log message id 987654321, got %+v", ticket.LogMessageID)
	}

	if err := store.LogTicketClose("no-such-channel", "123"); err == nil {
		t.Fatal("expected error when closing an unknown channel")
	}
}

func TestGetActiveDiscordComplaintInfos(t *testing.T) {
	store := newTestStore(t, nil)
	userID, _ := store.CreateUser("discord-1", "")

	complaintTicket, err := store.LogTicketOpen("opener-1", "channel-1", model.TicketTypeDiscordComplaint, "discord-1")
	if err != nil {
		t.Fatalf("LogTicketOpen failed: %v", err)
	}
	otherTicket, err := store.LogTicketOpen("opener-1", "channel-2", model.TicketTypeMindustryComplaint, "discord-1")
	if err != nil {
		t.Fatalf("LogTicketOpen failed: %v", err)
	}

	for _, ticketID := range []int64{complaintTicket, otherTicket} {
		if _, err := store.AddAction(ActionParams{
			UserID:      userID,
			PerformedBy: userID,
			ActionType:  model.ActionKick,
			TicketID:    ticketID,
		}); err != nil {
			t.Fatalf("AddAction failed: %v", err)
		}
	}

	all, err := store.GetActivePunishmentInfos(userID)
	if err != nil {
		t.Fatalf("GetActivePunishmentInfos failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 ticket-linked actions, got %d", len(all))
	}

	discordOnly, err := store.GetActiveDiscordComplaintInfos(userID)
	if err != nil {
		t.Fatalf("GetActiveDiscordComplaintInfos failed: %v", err)
	}
	if len(discordOnly) != 1 || discordOnly[0].ChannelID != "channel-1" {
		t.Fatalf("expected only the discord complaint, got %+v", discordOnly)
	}
}

func TestFindMindustryComplaintsByNickname(t *testing.T) {
	store := newTestStore(t, nil)

	if _, err := store.LogTicketOpen("opener-1", "channel-1", model.TicketTypeMindustryComplaint, "Griefer"); err != nil {
		t.Fatalf("LogTicketOpen failed: %v", err)
	}
	if _, err := store.LogTicketOpen("opener-1", "channel-2", model.TicketTypeMindustryComplaint, "Griefer"); err != nil {
		t.Fatalf("LogTicketOpen failed: %v", err)
	}

	// Only closed tickets with a log message count.
	if err := store.LogTicketClose("channel-1", "111"); err != nil {
		t.Fatalf("LogTicketClose failed: %v", err)
	}

	logIDs, err := store.FindMindustryComplaintsByNickname("Griefer")
	if err != nil {
		t.Fatalf("FindMindustryComplaintsByNickname failed: %v", err)
	}
	if len(logIDs) != 1 || logIDs[0] != "111" {
		t.Fatalf("expected [111], got %v", logIDs)
	}

	logIDs, err = store.FindMindustryComplaintsByNickname("Innocent")
	if err != nil {
		t.Fatalf("FindMindustryComplaintsByNickname failed: %v", err)
	}
	if len(logIDs) != 0 {
		t.Fatalf("expected no complaints, got %v", logIDs)
	}
}

func TestAddActionValidation(t *testing.T) {
	store := newTestStore(t, nil)
	userID, err := store.CreateUser("discord-1", "")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	_, err = store.AddAction(ActionParams{
		UserID:          userID,
		PerformedBy:     userID,
		ActionType:      model.ActionMute,
		DurationSeconds: 3600,
		// ExpiresAt missing
	})
	if err == nil {
		t.Fatal("expected error for duration without expiry")
	}

	_, err = store.AddAction(ActionParams{
		UserID:      userID,
		PerformedBy: userID,
		ActionType:  "bogus",
	})
	if err == nil {
		t.Fatal("expected error for unknown action type")
	}
}

func TestRevokeActionIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, fixedClock(now))

	userID, _ := store.CreateUser("discord-1", "")
	modID, _ := store.CreateUser("discord-mod", "")

	actionID, err := store.AddAction(ActionParams{
		UserID:          userID,
		PerformedBy:     modID,
		ActionType:      model.ActionMute,
		Reason:          "spam",
		DurationSeconds: 3600,
		ExpiresAt:       now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("AddAction failed: %v", err)
	}

	revoked, err := store.RevokeAction(actionID, modID, "appealed")
	if err != nil {
		t.Fatalf("RevokeAction failed: %v", err)
	}
	if !revoked {
		t.Fatal("expected first revocation to succeed")
	}

	action, err := store.GetActionByID(actionID)
	if err != nil {
		t.Fatalf("GetActionByID failed: %v", err)
	}
	if action.IsActive {
		t.Fatal("revoked action must be inactive")
	}
	if !action.RevokedBy.Valid || action.RevokedBy.Int64 != modID {
		t.Fatalf("expected revoked_by %d, got %+v", modID, action.RevokedBy)
	}
	if !action.RevocationReason.Valid || action.RevocationReason.String != "appealed" {
		t.Fatalf("expected revocation reason to be stored, got %+v", action.RevocationReason)
	}
	if !action.RevocationTime.Valid || action.RevocationTime.String != now.Format(TimeFormat) {
		t.Fatalf("expected revocation time %s, got %+v", now.Format(TimeFormat), action.RevocationTime)
	}

	// A second revocation must not overwrite the audit trail.
	revoked, err = store.RevokeAction(actionID, modID, "again")
	if err != nil {
		t.Fatalf("RevokeAction (repeat) failed: %v", err)
	}
	if revoked {
		t.Fatal("expected second revocation to report false")
	}
}

func TestUpdateActionLogMessage(t *testing.T) {
	store := newTestStore(t, nil)
	userID, _ := store.CreateUser("discord-1", "")

	actionID, err := store.AddAction(ActionParams{
		UserID:      userID,
		PerformedBy: userID,
		ActionType:  model.ActionKick,
		Reason:      "afk",
	})
	if err != nil {
		t.Fatalf("AddAction failed: %v", err)
	}

	ok, err := store.UpdateActionLogMessage(actionID, "msg-1")
	if err != nil {
		t.Fatalf("UpdateActionLogMessage failed: %v", err)
	}
	if !ok {
		t.Fatal("expected update to hit the row")
	}

	ok, err = store.UpdateActionLogMessage(9999, "msg-2")
	if err != nil {
		t.Fatalf("UpdateActionLogMessage failed: %v", err)
	}
	if ok {
		t.Fatal("expected update on a missing row to report false")
	}
}

func TestGetExpiredActivePunishments(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, fixedClock(now))
	userID, _ := store.CreateUser("discord-1", "")

	expired, err := store.AddAction(ActionParams{
		UserID:          userID,
		PerformedBy:     userID,
		ActionType:      model.ActionMute,
		DurationSeconds: 3600,
		ExpiresAt:       now.Add(-time.Minute),
	})
	if err != nil {
		t.Fatalf("AddAction failed: %v", err)
	}
	if _, err := store.AddAction(ActionParams{
		UserID:          userID,
		PerformedBy:     userID,
		ActionType:      model.ActionBan,
		DurationSeconds: 7200,
		ExpiresAt:       now.Add(time.Hour),
	}); err != nil {
		t.Fatalf("AddAction failed: %v", err)
	}

	actions, err := store.GetExpiredActivePunishments(now)
	if err != nil {
		t.Fatalf("GetExpiredActivePunishments failed: %v", err)
	}
	if len(actions) != 1 || actions[0].ID != expired {
		t.Fatalf("expected only entry %d to be expired, got %+v", expired, actions)
	}

	if err := store.DeactivateAction(expired); err != nil {
		t.Fatalf("DeactivateAction failed: %v", err)
	}
	actions, err = store.GetExpiredActivePunishments(now)
	if err != nil {
		t.Fatalf("GetExpiredActivePunishments failed: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("deactivated entries must not be returned again, got %+v", actions)
	}
}

func TestTicketHasPunishment(t *testing.T) {
	store := newTestStore(t, nil)
	userID, _ := store.CreateUser("discord-1", "")
	ticketID, err := store.LogTicketOpen("opener-1", "channel-1", model.TicketTypeDiscordComplaint, "discord-1")
	if err != nil {
		t.Fatalf("LogTicketOpen failed: %v", err)
	}

	punished, err := store.TicketHasPunishment(ticketID)
	if err != nil {
		t.Fatalf("TicketHasPunishment failed: %v", err)
	}
	if punished {
		t.Fatal("fresh ticket must have no punishment")
	}

	if _, err := store.AddAction(ActionParams{
		UserID:      userID,
		PerformedBy: userID,
		ActionType:  model.ActionKick,
		TicketID:    ticketID,
	}); err != nil {
		t.Fatalf("AddAction failed: %v", err)
	}

	punished, err = store.TicketHasPunishment(ticketID)
	if err != nil {
		t.Fatalf("TicketHasPunishment failed: %v", err)
	}
	if !punished {
		t.Fatal("expected the ticket to report its punishment")
	}
}

func TestGetFullUserData(t *testing.T) {
	store := newTestStore(t, nil)
	userID, _ := store.CreateUser("discord-1", "")
	modID, _ := store.CreateUser("discord-mod", "")

	if _, err := store.AddAction(ActionParams{
		UserID:      userID,
		PerformedBy: modID,
		ActionType:  model.ActionKick,
		Reason:      "afk",
	}); err != nil {
		t.Fatalf("AddAction failed: %v", err)
	}

	profile, err := store.GetFullUserData(model.PlatformDiscord, "discord-1")
	if err != nil {
		t.Fatalf("GetFullUserData failed: %v", err)
	}
	if profile == nil {
		t.Fatal("expected a profile")
	}
	if len(profile.Actions[model.ActionKick]) != 1 {
		t.Fatalf("expected one kick in the profile, got %+v", profile.Actions)
	}

	modProfile, err := store.GetFullUserData(model.PlatformDiscord, "discord-mod")
	if err != nil {
		t.Fatalf("GetFullUserData failed: %v", err)
	}
	if len(modProfile.ActionsTaken) != 1 {
		t.Fatalf("expected one action taken by the moderator, got %d", len(modProfile.ActionsTaken))
	}

	unseen, err := store.GetFullUserData(model.PlatformDiscord, "never-seen")
	if err != nil {
		t.Fatalf("GetFullUserData failed: %v", err)
	}
	if unseen != nil {
		t.Fatal("expected nil profile for an unseen user")
	}
}
