package ticket

import (
	"fmt"
	"log"
	"strings"

	"mindustry-bot/model"
	"mindustry-bot/utils"
	"mindustry-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

// HandleTicketOpenCommand registers the current channel as a ticket. The
// opener is the invoking user; complaint tickets carry the offender's
// identifier for later cross-referencing.
func HandleTicketOpenCommand(s *discordgo.Session, i *discordgo.InteractionCreate, store *database.Store, cfg *model.Config) {
	options := i.ApplicationCommandData().Options
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}

	ticketType := ""
	if typeOpt, ok := optionMap["type"]; ok {
		ticketType = typeOpt.StringValue()
	}
	offender := ""
	if offenderOpt, ok := optionMap["offender"]; ok {
		offender = offenderOpt.StringValue()
	}

	existing, err := store.GetTicketIDByChannel(i.ChannelID)
	if err != nil {
		log.Printf("Error checking existing ticket for channel %s: %v", i.ChannelID, err)
		utils.SendSimpleResponse(s, i, "❌ Failed to check this channel for an existing ticket.")
		return
	}
	if existing != 0 {
		utils.SendSimpleResponse(s, i, "ℹ️ This channel is already registered as a ticket.")
		return
	}

	ticketID, err := store.LogTicketOpen(i.Member.User.ID, i.ChannelID, ticketType, offender)
	if err != nil {
		log.Printf("Error opening ticket for channel %s: %v", i.ChannelID, err)
		utils.SendSimpleResponse(s, i, "❌ Failed to open the ticket.")
		return
	}

	message := fmt.Sprintf("✅ Ticket #%d opened for this channel.", ticketID)
	if note := priorComplaintNote(store, ticketType, offender); note != "" {
		message += "\n" + note
	}
	utils.SendSimpleResponse(s, i, message)
	utils.LogInfo(cfg.LogWebhookURL, "Tickets", "Open",
		fmt.Sprintf("Ticket #%d (%s) opened by %s in channel %s", ticketID, ticketType, i.Member.User.Username, i.ChannelID))
}

// priorComplaintNote warns the opener of a Discord complaint when the named
// offender already has active punishments from earlier complaint tickets.
func priorComplaintNote(store *database.Store, ticketType, offender string) string {
	if ticketType != model.TicketTypeDiscordComplaint || offender == "" {
		return ""
	}

	internalID, err := store.GetUserInternalID(model.PlatformDiscord, offender)
	if err != nil {
		log.Printf("Error resolving offender %s: %v", offender, err)
		return ""
	}
	if internalID == 0 {
		return ""
	}

	infos, err := store.GetActiveDiscordComplaintInfos(internalID)
	if err != nil {
		log.Printf("Error fetching complaint punishments for offender %s: %v", offender, err)
		return ""
	}
	if len(infos) == 0 {
		return ""
	}

	var lines []string
	for _, info := range infos {
		line := fmt.Sprintf("%s (channel %s", info.ActionType, info.ChannelID)
		if info.LogMessageID.Valid {
			line += ", log " + info.LogMessageID.String
		}
		lines = append(lines, line+")")
	}
	return fmt.Sprintf("⚠️ The offender already has %d active punishment(s) from earlier complaints:\n%s",
		len(infos), strings.Join(lines, "\n"))
}

// HandleTicketCloseCommand closes the ticket registered for the current
// channel and attaches the archive log message reference.
func HandleTicketCloseCommand(s *discordgo.Session, i *discordgo.InteractionCreate, store *database.Store, cfg *model.Config) {
	options := i.ApplicationCommandData().Options
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}

	logRef := ""
	if logOpt, ok := optionMap["log_message"]; ok {
		logRef = logOpt.StringValue()
	}

	ticket, err := store.GetTicketByChannel(i.ChannelID)
	if err != nil {
		log.Printf("Error looking up ticket for channel %s: %v", i.ChannelID, err)
		utils.SendSimpleResponse(s, i, "❌ Failed to look up the ticket for this channel.")
		return
	}
	if ticket == nil {
		utils.SendSimpleResponse(s, i, "ℹ️ This channel is not registered as a ticket.")
		return
	}
	if ticket.Status == model.TicketClosed {
		utils.SendSimpleResponse(s, i, "ℹ️ This ticket is already closed.")
		return
	}

	if err := store.LogTicketClose(i.ChannelID, logRef); err != nil {
		log.Printf("Error closing ticket for channel %s: %v", i.ChannelID, err)
		utils.SendSimpleResponse(s, i, "❌ Failed to close the ticket.")
		return
	}

	utils.SendSimpleResponse(s, i, fmt.Sprintf("✅ Ticket #%d closed.", ticket.ID))
	utils.LogInfo(cfg.LogWebhookURL, "Tickets", "Close",
		fmt.Sprintf("Ticket #%d closed by %s", ticket.ID, i.Member.User.Username))
}

// HandleComplaintsCommand looks up closed Mindustry complaints filed against
// an in-game nickname, for appeal cross-referencing.
func HandleComplaintsCommand(s *discordgo.Session, i *discordgo.InteractionCreate, store *database.Store) {
	options := i.ApplicationCommandData().Options
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}

	nicknameOpt, ok := optionMap["nickname"]
	if !ok {
		utils.SendSimpleResponse(s, i, "❌ Missing nickname option.")
		return
	}
	nickname := nicknameOpt.StringValue()

	logIDs, err := store.FindMindustryComplaintsByNickname(nickname)
	if err != nil {
		log.Printf("Error searching complaints for nickname %s: %v", nickname, err)
		utils.SendSimpleResponse(s, i, "❌ Failed to search complaints.")
		return
	}
	if len(logIDs) == 0 {
		utils.SendSimpleResponse(s, i, fmt.Sprintf("No closed complaints found against %q.", nickname))
		return
	}

	utils.SendSimpleResponse(s, i, fmt.Sprintf("Found %d closed complaint(s) against %q:\n%s",
		len(logIDs), nickname, strings.Join(logIDs, "\n")))
}
