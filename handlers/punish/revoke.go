package punish

import (
	"fmt"
	"log"

	"mindustry-bot/model"
	"mindustry-bot/utils"
	"mindustry-bot/utils/database/punishments"

	"github.com/bwmarrin/discordgo"
)

// HandleRevokeCommand processes the /revoke slash command: it deactivates
// the active punishment of the chosen kind with an audit trail, then undoes
// the Discord-side effect.
func HandleRevokeCommand(s *discordgo.Session, i *discordgo.InteractionCreate, svc *punishments.Service, cfg *model.Config) {
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
	if opts.Reason == "" {
		utils.SendFollowUpError(s, i.Interaction, "A reason is required to revoke a punishment.")
		return
	}

	result := ApplyRevocation(s, svc, cfg.Moderation, i.GuildID, target, i.Member.User.ID, opts.Action, opts.Reason)
	switch result {
	case ResultSuccess:
		utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("✅ Revoked %s for %s.", opts.Action, target.Username))
		utils.LogInfo(cfg.LogWebhookURL, "Moderation", "Revoke",
			fmt.Sprintf("%s revoked %s for %s: %s", i.Member.User.Username, opts.Action, target.Username, opts.Reason))
	case ResultNoPunishment:
		utils.SendFollowUp(s, i.Interaction, resultMessage(result, cfg.Moderation, target, opts.Action))
	default:
		utils.SendFollowUpError(s, i.Interaction, fmt.Sprintf("Failed to revoke %s for %s.", opts.Action, target.Username))
	}
}
