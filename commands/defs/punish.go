package defs

import "github.com/bwmarrin/discordgo"

var actionChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Warn", Value: "warn"},
	{Name: "Mute", Value: "mute"},
	{Name: "Ban", Value: "ban"},
	{Name: "Kick", Value: "kick"},
	{Name: "Voice mute", Value: "voice_mute"},
	{Name: "Blacklist", Value: "blacklist"},
	{Name: "Promotion", Value: "promotion"},
	{Name: "Demotion", Value: "demotion"},
}

var Punish = &discordgo.ApplicationCommand{
	Name:        "punish",
	Description: "Record a moderation action and apply its roles",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to act on",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "action",
			Description: "The action to record",
			Required:    true,
			Choices:     actionChoices,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the action",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "Duration like 30m, 12h, 7d, 2w (defaults per action)",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "role",
			Description: "Role label for promotions and demotions",
			Required:    false,
		},
	},
}

var Warnings = &discordgo.ApplicationCommand{
	Name:        "warnings",
	Description: "Show a user's active warning count",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to look up",
			Required:    true,
		},
	},
}

var Revoke = &discordgo.ApplicationCommand{
	Name:        "revoke",
	Description: "Revoke a user's active punishment",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The punished user",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "action",
			Description: "The punishment kind to revoke",
			Required:    true,
			Choices:     actionChoices,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the revocation",
			Required:    true,
		},
	},
}

var Record = &discordgo.ApplicationCommand{
	Name:        "record",
	Description: "Show a user's moderation record",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to look up",
			Required:    true,
		},
	},
}
