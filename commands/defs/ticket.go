package defs

import (
	"mindustry-bot/model"

	"github.com/bwmarrin/discordgo"
)

var TicketOpen = &discordgo.ApplicationCommand{
	Name:        "ticket-open",
	Description: "Register this channel as a ticket",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "type",
			Description: "The ticket type",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Discord complaint", Value: model.TicketTypeDiscordComplaint},
				{Name: "Mindustry complaint", Value: model.TicketTypeMindustryComplaint},
				{Name: "Appeal", Value: "Appeal"},
				{Name: "Other", Value: "Other"},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "offender",
			Description: "Discord ID or in-game nickname the complaint is about",
			Required:    false,
		},
	},
}

var TicketClose = &discordgo.ApplicationCommand{
	Name:        "ticket-close",
	Description: "Close the ticket registered for this channel",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "log_message",
			Description: "Link to the archive log message",
			Required:    false,
		},
	},
}

var Complaints = &discordgo.ApplicationCommand{
	Name:        "complaints",
	Description: "Find closed complaints against an in-game nickname",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "nickname",
			Description: "The in-game nickname to search for",
			Required:    true,
		},
	},
}
