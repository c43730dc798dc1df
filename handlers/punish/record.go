package punish

import (
	"fmt"
	"log"
	"strings"

	"mindustry-bot/model"
	"mindustry-bot/utils"
	"mindustry-bot/utils/database/punishments"

	"github.com/bwmarrin/discordgo"
)

// HandleRecordCommand processes the /record slash command: an ephemeral
// summary of a user's ledger history grouped by kind, plus their currently
// active punishments with links back to the originating tickets.
func HandleRecordCommand(s *discordgo.Session, i *discordgo.InteractionCreate, svc *punishments.Service, cfg *model.Config) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	options := i.ApplicationCommandData().Options
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}
	userOpt, ok := optionMap["user"]
	if !ok {
		utils.SendFollowUpError(s, i.Interaction, "Missing user option.")
		return
	}
	target := userOpt.UserValue(s)

	profile, err := svc.Store().GetFullUserData(model.PlatformDiscord, target.ID)
	if err != nil {
		log.Printf("Error fetching record for user %s: %v", target.ID, err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to fetch the user's record.")
		return
	}
	if profile == nil {
		utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("%s has no record.", target.Username))
		return
	}

	embed := buildRecordEmbed(target, profile)

	activeInfos, err := svc.Store().GetActivePunishmentInfos(profile.ID)
	if err != nil {
		log.Printf("Error fetching active punishments for user %s: %v", target.ID, err)
	} else if len(activeInfos) > 0 {
		var lines []string
		for _, info := range activeInfos {
			line := fmt.Sprintf("%s (channel %s", info.ActionType, info.ChannelID)
			if info.LogMessageID.Valid {
				line += ", log " + info.LogMessageID.String
			}
			lines = append(lines, line+")")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Active (from tickets)",
			Value: strings.Join(lines, "\n"),
		})
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Printf("Error sending record embed: %v", err)
	}
}

// HandleWarningsCommand answers /warnings with the user's active warning
// count against the configured escalation threshold.
func HandleWarningsCommand(s *discordgo.Session, i *discordgo.InteractionCreate, svc *punishments.Service, cfg *model.Config) {
	options := i.ApplicationCommandData().Options
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}
	userOpt, ok := optionMap["user"]
	if !ok {
		utils.SendSimpleResponse(s, i, "❌ Missing user option.")
		return
	}
	target := userOpt.UserValue(s)

	internalID, err := svc.Store().GetUserInternalID(model.PlatformDiscord, target.ID)
	if err != nil {
		log.Printf("Error resolving user %s: %v", target.ID, err)
		utils.SendSimpleResponse(s, i, "❌ Failed to look up the user.")
		return
	}

	warns := 0
	if internalID != 0 {
		warns, err = svc.Store().CountActiveWarns(internalID)
		if err != nil {
			log.Printf("Error counting warns for user %s: %v", target.ID, err)
			utils.SendSimpleResponse(s, i, "❌ Failed to count warnings.")
			return
		}
	}

	utils.SendSimpleResponse(s, i, fmt.Sprintf("%s has %d of %d active warnings.",
		target.Username, warns, cfg.Moderation.WarnsUntilAction))
}

func buildRecordEmbed(target *discordgo.User, profile *model.UserProfile) *discordgo.MessageEmbed {
	kinds := []model.ActionType{
		model.ActionWarn, model.ActionMute, model.ActionBan, model.ActionKick,
		model.ActionVoiceMute, model.ActionBlacklist, model.ActionPromotion, model.ActionDemotion,
	}

	var fields []*discordgo.MessageEmbedField
	for _, kind := range kinds {
		actions := profile.Actions[kind]
		if len(actions) == 0 {
			continue
		}
		active := 0
		for _, action := range actions {
			if action.IsActive {
				active++
			}
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   titleCase(string(kind)),
			Value:  fmt.Sprintf("%d total, %d active", len(actions), active),
			Inline: true,
		})
	}
	if len(fields) == 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "History", Value: "Clean record."})
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("📋 Record for %s", target.Username),
		Color:  0x5865F2, // Discord Blurple
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("First seen %s · %d actions performed", profile.CreatedAt, len(profile.ActionsTaken)),
		},
	}
}
