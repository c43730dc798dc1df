package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mindustry-bot/scanner"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) Run() {
	err := b.Session.Open()
	if err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	cfg := b.GetConfig()
	b.RegisteredCommands = make([]*discordgo.ApplicationCommand, 0)
	if cfg.GuildID != "" {
		b.RefreshCommands(cfg.GuildID)
	} else {
		log.Println("GUILD_ID not set, skipping command registration.")
	}

	b.SweepTicker = scanner.StartPunishmentSweeper(b.Session, b.Service, cfg, b.done)

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
