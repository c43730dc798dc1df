package punish

import (
	"errors"
	"fmt"
	"log"
	"time"

	"mindustry-bot/model"
	"mindustry-bot/utils/database/punishments"

	"github.com/bwmarrin/discordgo"
)

// ApplyResult is the user-visible outcome of a moderation command.
type ApplyResult string

const (
	ResultSuccess         ApplyResult = "SUCCESS"
	ResultWarnAndPunish   ApplyResult = "SUCCESS_WARN_AND_PUNISH"
	ResultWarnCovered     ApplyResult = "SUCCESS_WARN_LIMIT_COVERED"
	ResultAlreadyLonger   ApplyResult = "ALREADY_LONGER"
	ResultAlreadyPunished ApplyResult = "TICKET_ALREADY_PUNISHED"
	ResultNoPunishment    ApplyResult = "NO_PUNISHMENT"
	ResultFailed          ApplyResult = "FAILED"
)

// ApplyPunishment records the action in the ledger and, only after the write
// succeeds, applies the Discord-side effect (role, ban, kick). A side effect
// that fails after a successful write is logged for manual reconciliation
// and does not roll the ledger entry back.
func ApplyPunishment(s *discordgo.Session, svc *punishments.Service, cfg model.ModerationConfig, guildID string, target *discordgo.User, moderatorID string, kind model.ActionType, reason, role string, duration time.Duration, ticketID int64) (ApplyResult, punishments.Outcome) {
	opts := punishments.RecordOptions{
		Reason:   reason,
		Role:     role,
		TicketID: ticketID,
	}
	if duration > 0 {
		opts.DurationSeconds = int64(duration.Seconds())
	}

	outcome, err := svc.Record(model.PlatformDiscord, target.ID, moderatorID, kind, opts)
	if err != nil {
		if errors.Is(err, punishments.ErrTicketAlreadyPunished) {
			return ResultAlreadyPunished, outcome
		}
		log.Printf("Error recording %s for user %s: %v", kind, target.ID, err)
		return ResultFailed, outcome
	}

	if outcome.Status == model.StatusSkipped {
		return ResultAlreadyLonger, outcome
	}

	if err := applySideEffect(s, cfg, guildID, target.ID, kind, reason); err != nil {
		log.Printf("Warning: ledger entry %d recorded but side effect for %s on user %s failed: %v", outcome.ActionID, kind, target.ID, err)
	}

	if outcome.Escalated {
		if outcome.AutoStatus != model.StatusAdded {
			// The threshold fired and the warns were cleared, but an
			// existing longer punishment already covers the user.
			return ResultWarnCovered, outcome
		}
		autoReason := fmt.Sprintf("Reached %d active warnings.", cfg.WarnsUntilAction)
		if err := applySideEffect(s, cfg, guildID, target.ID, cfg.ActionOnWarnLimit, autoReason); err != nil {
			log.Printf("Warning: automatic %s recorded as entry %d but side effect failed for user %s: %v", cfg.ActionOnWarnLimit, outcome.AutoActionID, target.ID, err)
		}
		return ResultWarnAndPunish, outcome
	}

	return ResultSuccess, outcome
}

// ApplyRevocation revokes the active punishment of the given kind in the
// ledger, then undoes the Discord-side effect.
func ApplyRevocation(s *discordgo.Session, svc *punishments.Service, cfg model.ModerationConfig, guildID string, target *discordgo.User, moderatorID string, kind model.ActionType, reason string) ApplyResult {
	revoked, err := svc.Revoke(model.PlatformDiscord, target.ID, moderatorID, reason, kind)
	if err != nil {
		log.Printf("Error revoking %s for user %s: %v", kind, target.ID, err)
		return ResultFailed
	}
	if !revoked {
		return ResultNoPunishment
	}

	if err := undoSideEffect(s, cfg, guildID, target.ID, kind, reason); err != nil {
		log.Printf("Warning: revocation recorded but side effect removal for %s on user %s failed: %v", kind, target.ID, err)
	}
	return ResultSuccess
}

// applySideEffect performs the externally visible half of a punishment.
func applySideEffect(s *discordgo.Session, cfg model.ModerationConfig, guildID, userID string, kind model.ActionType, reason string) error {
	switch kind {
	case model.ActionMute, model.ActionBan, model.ActionVoiceMute:
		roleID := cfg.Roles[kind]
		if roleID == "" {
			return nil
		}
		return s.GuildMemberRoleAdd(guildID, userID, roleID)
	case model.ActionBlacklist:
		return s.GuildBanCreateWithReason(guildID, userID, reason, 0)
	case model.ActionKick:
		return s.GuildMemberDeleteWithReason(guildID, userID, reason)
	case model.ActionWarn, model.ActionPromotion, model.ActionDemotion:
		// Warns are ledger-only; role changes are applied by the caller
		// that knows the concrete role.
		return nil
	}
	return fmt.Errorf("no side effect defined for action type %q", kind)
}

// LiftSideEffect undoes the Discord-side effect of a punishment kind without
// touching the ledger. The expiry sweeper calls it before deactivating a row.
func LiftSideEffect(s *discordgo.Session, cfg model.ModerationConfig, guildID, userID string, kind model.ActionType) error {
	return undoSideEffect(s, cfg, guildID, userID, kind, "punishment expired")
}

// undoSideEffect reverses applySideEffect after a revocation.
func undoSideEffect(s *discordgo.Session, cfg model.ModerationConfig, guildID, userID string, kind model.ActionType, reason string) error {
	switch kind {
	case model.ActionMute, model.ActionBan, model.ActionVoiceMute:
		roleID := cfg.Roles[kind]
		if roleID == "" {
			return nil
		}
		return s.GuildMemberRoleRemove(guildID, userID, roleID)
	case model.ActionBlacklist:
		if err := s.GuildBanDelete(guildID, userID); err != nil {
			// The user may have been unbanned by hand already.
			log.Printf("Could not unban user %s in guild %s: %v", userID, guildID, err)
		}
		return nil
	case model.ActionWarn, model.ActionKick, model.ActionPromotion, model.ActionDemotion:
		return nil
	}
	return fmt.Errorf("no side effect defined for action type %q", kind)
}
