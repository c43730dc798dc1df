package punish

import (
	"path/filepath"
	"testing"
	"time"

	"mindustry-bot/model"
	"mindustry-bot/utils/database"
	"mindustry-bot/utils/database/punishments"

	"github.com/bwmarrin/discordgo"
)

func newTestService(t *testing.T, cfg model.ModerationConfig) *punishments.Service {
	t.Helper()
	db, err := database.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := database.Clock(func() time.Time { return now })
	return punishments.New(database.New(db, clock), cfg, clock)
}

// No roles are configured and warns carry no Discord-side effect, so these
// paths never touch the session.
func TestApplyPunishmentWarnCovered(t *testing.T) {
	cfg := model.ModerationConfig{
		WarnsUntilAction:            3,
		ActionOnWarnLimit:           model.ActionMute,
		ActionOnWarnDurationSeconds: 86400,
		DefaultDurationSeconds: map[model.ActionType]int64{
			model.ActionMute: 86400,
			model.ActionWarn: 2592000,
		},
	}
	svc := newTestService(t, cfg)
	target := &discordgo.User{ID: "user-1", Username: "user"}

	// An existing mute longer than the automatic one.
	result, _ := ApplyPunishment(nil, svc, cfg, "", target, "mod-1", model.ActionMute, "spam", "", 7*24*time.Hour, 0)
	if result != ResultSuccess {
		t.Fatalf("expected SUCCESS for the mute, got %s", result)
	}

	var outcome punishments.Outcome
	for n := 0; n < 3; n++ {
		result, outcome = ApplyPunishment(nil, svc, cfg, "", target, "mod-1", model.ActionWarn, "rule", "", 0, 0)
	}
	if result != ResultWarnCovered {
		t.Fatalf("expected the covered escalation to be reported distinctly, got %s", result)
	}
	if !outcome.Escalated || outcome.AutoStatus != model.StatusSkipped {
		t.Fatalf("expected a skipped automatic punishment, got %+v", outcome)
	}

	message := resultMessage(result, cfg, target, model.ActionWarn)
	if message == resultMessage(ResultSuccess, cfg, target, model.ActionWarn) {
		t.Fatal("covered escalation must not read like a plain warn")
	}
}

func TestApplyPunishmentWarnAndPunish(t *testing.T) {
	cfg := model.ModerationConfig{
		WarnsUntilAction:            2,
		ActionOnWarnLimit:           model.ActionMute,
		ActionOnWarnDurationSeconds: 86400,
		DefaultDurationSeconds: map[model.ActionType]int64{
			model.ActionMute: 86400,
			model.ActionWarn: 2592000,
		},
	}
	svc := newTestService(t, cfg)
	target := &discordgo.User{ID: "user-1", Username: "user"}

	result, _ := ApplyPunishment(nil, svc, cfg, "", target, "mod-1", model.ActionWarn, "one", "", 0, 0)
	if result != ResultSuccess {
		t.Fatalf("expected SUCCESS for the first warn, got %s", result)
	}
	result, outcome := ApplyPunishment(nil, svc, cfg, "", target, "mod-1", model.ActionWarn, "two", "", 0, 0)
	if result != ResultWarnAndPunish {
		t.Fatalf("expected WARN_AND_PUNISH at the threshold, got %s", result)
	}
	if outcome.AutoStatus != model.StatusAdded || outcome.AutoActionID == 0 {
		t.Fatalf("expected an automatic punishment entry, got %+v", outcome)
	}
}
