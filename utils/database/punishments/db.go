package punishments

import (
	"errors"
	"sync"
	"time"

	"mindustry-bot/model"
	"mindustry-bot/utils/database"
)

// ErrTicketAlreadyPunished is returned when a punishment is requested inside
// a ticket that already produced one. Complaint tickets yield exactly one
// disciplinary outcome.
var ErrTicketAlreadyPunished = errors.New("ticket already has a punishment recorded")

// Service applies the stacking and escalation policies on top of the ledger.
// The mutex serializes the read-decide-write sequence so two concurrent
// commands cannot both pass the stacking check against a stale snapshot.
type Service struct {
	store *database.Store
	cfg   model.ModerationConfig
	now   database.Clock

	mu sync.Mutex
}

// New creates a punishment service. A nil clock falls back to wall time.
func New(store *database.Store, cfg model.ModerationConfig, clock database.Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{store: store, cfg: cfg, now: clock}
}

// Store exposes the underlying ledger store for read-only lookups by the
// command layer.
func (svc *Service) Store() *database.Store {
	return svc.store
}
