package punishments

import (
	"fmt"
	"log"
	"time"

	"mindustry-bot/model"
	"mindustry-bot/utils/database"
)

// RecordOptions carries the optional parts of a punishment request.
type RecordOptions struct {
	Reason string
	// Role is the role label for promotion/demotion entries.
	Role string
	// DurationSeconds overrides the configured default for the kind.
	// Zero picks the default; promotions and demotions stay permanent.
	DurationSeconds int64
	// TicketID links the entry to the ticket it was issued in.
	TicketID int64
}

// Outcome reports what a Record call did. When a warn triggers the
// escalation, AutoActionID points at the automatic punishment so the caller
// can announce both entries.
type Outcome struct {
	Status       model.RecordStatus
	ActionID     int64
	Escalated    bool
	AutoStatus   model.RecordStatus
	AutoActionID int64
}

// Record resolves identities, applies the stacking policy and appends the
// action to the ledger. Validation problems are returned as errors before
// anything is written; a SKIPPED status means an existing punishment already
// covers the user for at least as long.
func (svc *Service) Record(platform model.Platform, targetID, performerID string, kind model.ActionType, opts RecordOptions) (Outcome, error) {
	failed := Outcome{Status: model.StatusFailed}

	if !kind.Valid() {
		return failed, fmt.Errorf("unknown action type: %q", kind)
	}
	if _, err := model.ParsePlatform(string(platform)); err != nil {
		return failed, err
	}

	duration := opts.DurationSeconds
	if duration == 0 && kind.RequiresDuration() {
		duration = svc.cfg.DefaultDurationSeconds[kind]
		if duration == 0 {
			return failed, fmt.Errorf("no duration given and no default configured for %s", kind)
		}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if opts.TicketID != 0 {
		punished, err := svc.store.TicketHasPunishment(opts.TicketID)
		if err != nil {
			return failed, err
		}
		if punished {
			return failed, ErrTicketAlreadyPunished
		}
	}

	targetInternal, performerInternal, err := svc.store.ResolveUserIDs(platform, targetID, performerID)
	if err != nil {
		return failed, err
	}

	params := database.ActionParams{
		UserID:      targetInternal,
		PerformedBy: performerInternal,
		ActionType:  kind,
		TicketID:    opts.TicketID,
		Role:        opts.Role,
		Reason:      opts.Reason,
	}
	if duration > 0 {
		params.DurationSeconds = duration
		params.ExpiresAt = svc.now().UTC().Add(time.Duration(duration) * time.Second)
	}

	status, actionID, err := svc.recordWithStacking(params)
	if err != nil {
		return failed, err
	}
	outcome := Outcome{Status: status, ActionID: actionID}

	if kind == model.ActionWarn && status == model.StatusAdded {
		if err := svc.escalateIfNeeded(targetInternal, performerInternal, opts.TicketID, &outcome); err != nil {
			// The warn itself is recorded; escalation failure is surfaced
			// for the caller to log, not rolled back.
			return outcome, err
		}
	}

	return outcome, nil
}

// recordWithStacking runs the stacking policy for stackable kinds and
// appends the row. Warns, kicks and role changes are recorded
// unconditionally.
func (svc *Service) recordWithStacking(params database.ActionParams) (model.RecordStatus, int64, error) {
	if params.ActionType.Stackable() {
		allow, err := svc.shouldAdd(params.UserID, params.ActionType, params.ExpiresAt)
		if err != nil {
			return model.StatusFailed, 0, err
		}
		if !allow {
			return model.StatusSkipped, 0, nil
		}
	}

	actionID, err := svc.store.AddAction(params)
	if err != nil {
		return model.StatusFailed, 0, err
	}
	return model.StatusAdded, actionID, nil
}

// shouldAdd decides whether a new timed punishment supersedes the existing
// active one of the same kind. The net active expiry never decreases: an
// earlier-or-equal expiry is refused, a later one silently deactivates the
// old row first.
func (svc *Service) shouldAdd(userID int64, kind model.ActionType, newExpiry time.Time) (bool, error) {
	existing, err := svc.store.GetActivePunishment(userID, kind)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return true, nil
	}

	if !existing.ExpiresAt.Valid || existing.ExpiresAt.String == "" {
		log.Printf("Skipped adding %s for user_id %d as a permanent one already exists.", kind, userID)
		return false, nil
	}

	existingExpiry, err := time.Parse(database.TimeFormat, existing.ExpiresAt.String)
	if err != nil {
		return false, fmt.Errorf("failed to parse expiry of action %d: %w", existing.ID, err)
	}

	// Expiries are stored at second granularity; compare at the same
	// granularity so a sub-second clock cannot make an equal expiry look
	// later than the stored one.
	if newExpiry.Truncate(time.Second).After(existingExpiry) {
		if err := svc.store.DeactivateAction(existing.ID); err != nil {
			return false, err
		}
		return true, nil
	}

	log.Printf("Skipped adding %s for user_id %d as a longer or equal punishment already exists.", kind, userID)
	return false, nil
}

// escalateIfNeeded checks the active warn count after a new warn and, at the
// configured threshold, clears all warns and issues one automatic
// punishment. The reset makes the trigger one-shot: the next escalation
// needs a full set of fresh warns.
func (svc *Service) escalateIfNeeded(targetInternal, performerInternal, ticketID int64, outcome *Outcome) error {
	warns, err := svc.store.CountActiveWarns(targetInternal)
	if err != nil {
		return err
	}
	if svc.cfg.WarnsUntilAction <= 0 || warns < svc.cfg.WarnsUntilAction {
		return nil
	}

	if err := svc.store.DeactivateAllWarns(targetInternal); err != nil {
		return err
	}

	autoKind := svc.cfg.ActionOnWarnLimit
	if !autoKind.Valid() || !autoKind.Stackable() {
		return fmt.Errorf("invalid action_on_warn_limit configured: %q", autoKind)
	}

	params := database.ActionParams{
		UserID:          targetInternal,
		PerformedBy:     performerInternal,
		ActionType:      autoKind,
		TicketID:        ticketID,
		Reason:          fmt.Sprintf("Automatic %s for reaching %d warnings.", autoKind, svc.cfg.WarnsUntilAction),
		DurationSeconds: svc.cfg.ActionOnWarnDurationSeconds,
		ExpiresAt:       svc.now().UTC().Add(time.Duration(svc.cfg.ActionOnWarnDurationSeconds) * time.Second),
	}

	autoStatus, autoID, err := svc.recordWithStacking(params)
	if err != nil {
		return err
	}

	outcome.Escalated = true
	outcome.AutoStatus = autoStatus
	outcome.AutoActionID = autoID
	return nil
}

// Revoke finds the active punishment of the given kind for the target and
// deactivates it with an audit trail. The revoker is always staff acting
// through Discord and is created on first sight; the target is never
// created, since an unseen user has nothing to revoke. Returns false when
// there is nothing active, so an immediate repeat call is a no-op.
func (svc *Service) Revoke(platform model.Platform, targetID, revokerID, reason string, kind model.ActionType) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("unknown action type: %q", kind)
	}

	revokerInternal, err := svc.store.CreateUser(revokerID, "")
	if err != nil {
		return false, err
	}

	targetInternal, err := svc.store.GetUserInternalID(platform, targetID)
	if err != nil {
		return false, err
	}
	if targetInternal == 0 {
		return false, nil
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	active, err := svc.store.GetActivePunishment(targetInternal, kind)
	if err != nil {
		return false, err
	}
	if active == nil {
		return false, nil
	}

	return svc.store.RevokeAction(active.ID, revokerInternal, reason)
}
