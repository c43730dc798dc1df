package punish

import (
	"fmt"
	"strings"
	"time"

	"mindustry-bot/model"
	"mindustry-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// ParsedOptions holds the parsed options from a moderation command
// interaction.
type ParsedOptions struct {
	TargetUser *discordgo.User
	Action     model.ActionType
	Reason     string
	Role       string
	Duration   time.Duration
	OptionMap  map[string]*discordgo.ApplicationCommandInteractionDataOption
}

// parseModerationOptions extracts and validates the command options.
func parseModerationOptions(s *discordgo.Session, i *discordgo.InteractionCreate) (ParsedOptions, error) {
	options := i.ApplicationCommandData().Options
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}

	parsed := ParsedOptions{OptionMap: optionMap}

	userOpt, ok := optionMap["user"]
	if !ok {
		return parsed, fmt.Errorf("missing user option")
	}
	parsed.TargetUser = userOpt.UserValue(s)

	actionOpt, ok := optionMap["action"]
	if !ok {
		return parsed, fmt.Errorf("missing action option")
	}
	parsed.Action = model.ActionType(actionOpt.StringValue())
	if !parsed.Action.Valid() {
		return parsed, fmt.Errorf("unknown action type: %s", actionOpt.StringValue())
	}

	if reasonOpt, ok := optionMap["reason"]; ok {
		parsed.Reason = reasonOpt.StringValue()
	}

	if roleOpt, ok := optionMap["role"]; ok {
		parsed.Role = roleOpt.StringValue()
	}

	if durationOpt, ok := optionMap["duration"]; ok {
		durationStr := durationOpt.StringValue()
		duration, err := utils.ParseDuration(durationStr)
		if err != nil {
			return parsed, fmt.Errorf("invalid duration %q: %w", durationStr, err)
		}
		if duration <= 0 {
			return parsed, fmt.Errorf("duration must be positive, got %q", durationStr)
		}
		parsed.Duration = duration
	}

	return parsed, nil
}

// resultMessage maps an ApplyResult to the moderator-facing response.
func resultMessage(result ApplyResult, cfg model.ModerationConfig, target *discordgo.User, kind model.ActionType) string {
	switch result {
	case ResultSuccess:
		return fmt.Sprintf("✅ Applied %s to %s.", kind, target.Username)
	case ResultWarnAndPunish:
		return fmt.Sprintf("✅ Warn applied. %s reached %d warnings and has been automatically %sd.", target.Username, cfg.WarnsUntilAction, cfg.ActionOnWarnLimit)
	case ResultWarnCovered:
		return fmt.Sprintf("✅ Warn applied. %s reached %d warnings; the counter was reset, but a longer active %s already covers them.", target.Username, cfg.WarnsUntilAction, cfg.ActionOnWarnLimit)
	case ResultAlreadyLonger:
		return fmt.Sprintf("ℹ️ Skipped: %s already has an active %s covering at least as long.", target.Username, kind)
	case ResultAlreadyPunished:
		return "ℹ️ This ticket already has a punishment recorded."
	case ResultNoPunishment:
		return fmt.Sprintf("ℹ️ %s has no active %s to revoke.", target.Username, kind)
	}
	return fmt.Sprintf("❌ Failed to apply %s to %s. Check the logs.", kind, target.Username)
}

// buildAnnouncementEmbed is the public record posted in the channel after a
// successful ledger write. Its message id is attached back to the entry.
func buildAnnouncementEmbed(i *discordgo.InteractionCreate, target *discordgo.User, kind model.ActionType, reason string, duration time.Duration, actionID int64) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "User", Value: fmt.Sprintf("<@%s>", target.ID), Inline: true},
		{Name: "Action", Value: string(kind), Inline: true},
		{Name: "Moderator", Value: fmt.Sprintf("<@%s>", i.Member.User.ID), Inline: true},
	}
	if duration > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Expires", Value: fmt.Sprintf("<t:%d:R>", time.Now().Add(duration).Unix()), Inline: true,
		})
	}
	if reason != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Reason", Value: reason})
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("⚖️ %s", titleCase(string(kind))),
		Color:  0xED4245, // Discord red
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Entry #%d", actionID),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// titleCase turns an action type like "voice_mute" into "Voice mute".
func titleCase(kind string) string {
	kind = strings.ReplaceAll(kind, "_", " ")
	if kind == "" {
		return kind
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}
