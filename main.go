package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"mindustry-bot/bot"
	"mindustry-bot/config"
	"mindustry-bot/handlers"
	"mindustry-bot/utils/database"
	"mindustry-bot/utils/database/punishments"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	db, err := database.Init(cfg.DBPath)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer db.Close()

	clock := database.Clock(func() time.Time { return time.Now().UTC() })
	store := database.New(db, clock)
	svc := punishments.New(store, cfg.Moderation, clock)

	b, err := bot.New(cfg, store, svc)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	handlers.Register(b)

	b.Run()
	b.Close()
}
