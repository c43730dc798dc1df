package punish

import (
	"fmt"
	"log"
	"time"

	"mindustry-bot/model"
	"mindustry-bot/utils"
	"mindustry-bot/utils/database/punishments"

	"github.com/bwmarrin/discordgo"
)

// HandlePunishCommand processes the /punish slash command: it records the
// action in the ledger, applies the Discord-side effect, announces the
// result and attaches the announcement to the ledger entry.
func HandlePunishCommand(s *discordgo.Session, i *discordgo.InteractionCreate, svc *punishments.Service, cfg *model.Config) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts, err := parseModerationOptions(s, i)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, err.Error())
		return
	}
	target := opts.TargetUser

	// One punishment command per user at a time; repeated clicks while the
	// first is in flight are refused.
	if !utils.CheckAndSetPunishLock(target.ID) {
		utils.SendFollowUpError(s, i.Interaction, "A punishment for this user is already being processed.")
		return
	}
	defer utils.ReleasePunishLock(target.ID)

	// Punishments issued inside a logged ticket channel are linked to it.
	ticketID, err := svc.Store().GetTicketIDByChannel(i.ChannelID)
	if err != nil {
		log.Printf("Error looking up ticket for channel %s: %v", i.ChannelID, err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to check the ticket for this channel.")
		return
	}

	result, outcome := ApplyPunishment(s, svc, cfg.Moderation, i.GuildID, target, i.Member.User.ID, opts.Action, opts.Reason, opts.Role, opts.Duration, ticketID)

	message := resultMessage(result, cfg.Moderation, target, opts.Action)
	if result == ResultAlreadyPunished {
		if logID, err := svc.Store().GetPunishmentLogIDForTicket(ticketID); err == nil && logID != "" {
			message += fmt.Sprintf(" See message %s.", logID)
		}
	}
	utils.SendFollowUp(s, i.Interaction, message)

	if result != ResultSuccess && result != ResultWarnAndPunish && result != ResultWarnCovered {
		return
	}

	announceAction(s, i, svc, target, opts.Action, opts.Reason, outcome.ActionID, opts.Duration)
	if result == ResultWarnAndPunish {
		autoReason := fmt.Sprintf("Reached %d active warnings.", cfg.Moderation.WarnsUntilAction)
		announceAction(s, i, svc, target, cfg.Moderation.ActionOnWarnLimit, autoReason, outcome.AutoActionID, 0)
	}

	utils.LogInfo(cfg.LogWebhookURL, "Moderation", "Punish",
		fmt.Sprintf("%s applied %s to %s (entry #%d)", i.Member.User.Username, opts.Action, target.Username, outcome.ActionID))
}

// announceAction posts the public embed for a ledger entry and stores the
// resulting message id on the entry.
func announceAction(s *discordgo.Session, i *discordgo.InteractionCreate, svc *punishments.Service, target *discordgo.User, kind model.ActionType, reason string, actionID int64, duration time.Duration) {
	embed := buildAnnouncementEmbed(i, target, kind, reason, duration, actionID)
	msg, err := s.ChannelMessageSendEmbed(i.ChannelID, embed)
	if err != nil {
		log.Printf("Failed to send announcement for entry %d to channel %s: %v", actionID, i.ChannelID, err)
		return
	}
	if ok, err := svc.Store().UpdateActionLogMessage(actionID, msg.ID); err != nil || !ok {
		log.Printf("Failed to attach log message %s to entry %d: %v", msg.ID, actionID, err)
	}
	utils.NotifyUserEmbed(s, target.ID, embed)
}
