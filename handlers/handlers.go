package handlers

import (
	"log"

	"mindustry-bot/bot"
	"mindustry-bot/handlers/punish"
	"mindustry-bot/handlers/ticket"
	"mindustry-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	moderatorOnly := func(h func(s *discordgo.Session, i *discordgo.InteractionCreate)) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !utils.IsModerator(i.Member.Roles, b.GetConfig().Moderation.ModeratorRoleIDs) {
				s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseChannelMessageWithSource,
					Data: &discordgo.InteractionResponseData{
						Content: "You do not have permission to use this command.",
						Flags:   discordgo.MessageFlagsEphemeral,
					},
				})
				return
			}
			h(s, i)
		}
	}

	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"punish": moderatorOnly(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			punish.HandlePunishCommand(s, i, b.Service, b.GetConfig())
		}),
		"revoke": moderatorOnly(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			punish.HandleRevokeCommand(s, i, b.Service, b.GetConfig())
		}),
		"record": moderatorOnly(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			punish.HandleRecordCommand(s, i, b.Service, b.GetConfig())
		}),
		"warnings": moderatorOnly(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			punish.HandleWarningsCommand(s, i, b.Service, b.GetConfig())
		}),
		"ticket-open": moderatorOnly(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			ticket.HandleTicketOpenCommand(s, i, b.Store, b.GetConfig())
		}),
		"ticket-close": moderatorOnly(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			ticket.HandleTicketCloseCommand(s, i, b.Store, b.GetConfig())
		}),
		"complaints": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			ticket.HandleComplaintsCommand(s, i, b.Store)
		},
		"botinfo": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			SystemInfoHandler(s, i, b.GetConfig())
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
		cfg := b.GetConfig()
		if cfg.LogWebhookURL != "" {
			if err := utils.LogInfo(cfg.LogWebhookURL, "System", "Startup", "Bot has started successfully."); err != nil {
				log.Printf("Failed to send startup log: %v", err)
			}
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if i.Member == nil || i.Member.User == nil {
			// Moderation commands are guild-only.
			return
		}
		if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
}
