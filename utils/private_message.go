package utils

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// NotifyUserEmbed sends a direct message with an embed to a user. Failures
// are logged only; users with closed DMs must not fail the command that
// triggered the notification.
func NotifyUserEmbed(s *discordgo.Session, userID string, embed *discordgo.MessageEmbed) {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Error creating private channel with user %s: %v", userID, err)
		return
	}
	if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		log.Printf("Error sending private message to user %s: %v", userID, err)
	}
}
