package commands

import (
	"mindustry-bot/commands/defs"

	"github.com/bwmarrin/discordgo"
)

// GenerateCommands returns every slash command the bot registers.
func GenerateCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		defs.Punish,
		defs.Revoke,
		defs.Record,
		defs.Warnings,
		defs.TicketOpen,
		defs.TicketClose,
		defs.Complaints,
		defs.BotInfo,
	}
}
