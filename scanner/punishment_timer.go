package scanner

import (
	"log"
	"time"

	"mindustry-bot/handlers/punish"
	"mindustry-bot/model"
	"mindustry-bot/utils/database/punishments"

	"github.com/bwmarrin/discordgo"
)

// StartPunishmentSweeper starts the background goroutine that lifts expired
// punishments. Rows whose side-effect removal fails are left active so the
// next sweep retries them.
func StartPunishmentSweeper(s *discordgo.Session, svc *punishments.Service, cfg *model.Config, done <-chan struct{}) *time.Ticker {
	interval := time.Duration(cfg.SweepIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				sweepExpiredPunishments(s, svc, cfg)
			case <-done:
				return
			}
		}
	}()
	return ticker
}

func sweepExpiredPunishments(s *discordgo.Session, svc *punishments.Service, cfg *model.Config) {
	store := svc.Store()
	expired, err := store.GetExpiredActivePunishments(time.Now().UTC())
	if err != nil {
		log.Printf("Error getting expired punishments: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}
	log.Printf("Sweeping %d expired punishment(s)", len(expired))

	for _, action := range expired {
		user, err := store.GetUserByInternalID(action.UserID)
		if err != nil {
			log.Printf("Error resolving user %d for expired entry %d: %v", action.UserID, action.ID, err)
			continue
		}

		// Side effects only exist for users with a Discord identity.
		if user != nil && user.DiscordID.Valid && cfg.GuildID != "" {
			if err := punish.LiftSideEffect(s, cfg.Moderation, cfg.GuildID, user.DiscordID.String, action.ActionType); err != nil {
				log.Printf("Could not lift %s for user %s (entry %d), will retry: %v", action.ActionType, user.DiscordID.String, action.ID, err)
				continue
			}
		}

		if err := store.DeactivateAction(action.ID); err != nil {
			log.Printf("Error deactivating expired entry %d: %v", action.ID, err)
		}
	}
}
