package beacon

import (
	"context"
	"errors"
	"log"
	"time"

	"trail-status-backend/config"
	"trail-status-backend/internal/store"
)

// StatusStore is the slice of the store the poller needs.
type StatusStore interface {
	GetTroyStatus(ctx context.Context) (store.TroyStatus, error)
	SetOnTrail(ctx context.Context, onTrail bool) error
	SetBeaconURL(ctx context.Context, beaconURL *string) error
}

// Notifier sends trail status change notifications. Delivery is best-effort:
// a failed send is logged by the implementation and never retried here; the
// next status transition is simply evaluated fresh.
type Notifier interface {
	NotifyStart(ctx context.Context, beaconURL string)
	NotifyEnd(ctx context.Context, activityID *int64)
	NotifyDiscard(ctx context.Context)
}

// SnapshotSource fetches live beacon readings.
type SnapshotSource interface {
	Fetch(ctx context.Context, beaconURL string) (Snapshot, error)
}

// Poller drives the reconciliation loop on a fixed interval.
type Poller struct {
	cfg      *config.BeaconConfig
	source   SnapshotSource
	store    StatusStore
	notifier Notifier
	now      func() time.Time
}

// NewPoller creates and initializes a new beacon poller.
func NewPoller(cfg *config.BeaconConfig, source SnapshotSource, st StatusStore, notifier Notifier) *Poller {
	return &Poller{
		cfg:      cfg,
		source:   source,
		store:    st,
		notifier: notifier,
		now:      time.Now,
	}
}

// Run starts the polling loop. Only the leader instance polls; followers
// return immediately. The loop exits when ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	if p.cfg.Disabled {
		log.Println("Beacon poller is disabled. Not starting.")
		return
	}

	switch p.cfg.ResolveRole() {
	case config.RoleFollower:
		log.Printf("Current region (%s) is not the primary region (%s), skipping beacon poller", p.cfg.CurrentRegion, p.cfg.PrimaryRegion)
		return
	case config.RoleLeader:
		if p.cfg.CurrentRegion == "" || p.cfg.PrimaryRegion == "" {
			log.Println("Current and primary regions are not both set, running beacon poller")
		} else {
			log.Printf("Beacon poller running in region: %s", p.cfg.CurrentRegion)
		}
	}

	p.ProcessOnce(ctx)

	timer := time.NewTimer(p.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Beacon poller shutting down.")
			return
		case <-timer.C:
			p.ProcessOnce(ctx)
			timer.Reset(p.cfg.Interval)
		}
	}
}

// ProcessOnce performs a single reconciliation cycle. Every failure is
// isolated to this cycle: it is logged, nothing further is mutated, and the
// next cycle retries naturally.
func (p *Poller) ProcessOnce(ctx context.Context) {
	status, err := p.store.GetTroyStatus(ctx)
	if err != nil {
		log.Printf("Error reading troy status: %v", err)
		return
	}

	if status.BeaconURL == nil {
		// Self-heal a durable state claiming on-trail with no share to watch.
		if status.IsOnTrail {
			log.Println("Troy status indicates on the trails but no beacon url found, clearing troy status")
			if err := p.store.SetOnTrail(ctx, false); err != nil {
				log.Printf("Error clearing troy status: %v", err)
			}
		}
		return
	}

	snap, err := p.source.Fetch(ctx, *status.BeaconURL)
	if errors.Is(err, ErrNotFound) {
		log.Println("Beacon share not found (404), clearing beacon url")
		if err := p.store.SetBeaconURL(ctx, nil); err != nil {
			log.Printf("Error clearing beacon url: %v", err)
		}
		return
	}
	if err != nil {
		log.Printf("Failed to get beacon data: %v", err)
		return
	}

	normalized, intents := Evaluate(status, snap, p.now())
	log.Printf("Beacon status %s normalized to %s (%d intents)", snap.Status, normalized, len(intents))

	p.apply(ctx, intents)
}

// apply executes the FSM's intents in order. A store write failure aborts
// the remaining intents so no notification fires for a transition that was
// never persisted.
func (p *Poller) apply(ctx context.Context, intents []Intent) {
	for _, intent := range intents {
		switch intent.Kind {
		case IntentSetOnTrail:
			if err := p.store.SetOnTrail(ctx, intent.OnTrail); err != nil {
				log.Printf("Error setting on-trail status: %v", err)
				return
			}
		case IntentClearBeaconURL:
			if err := p.store.SetBeaconURL(ctx, nil); err != nil {
				log.Printf("Error clearing beacon url: %v", err)
				return
			}
		case IntentNotifyStart:
			p.notifier.NotifyStart(ctx, intent.BeaconURL)
		case IntentNotifyEnd:
			p.notifier.NotifyEnd(ctx, intent.ActivityID)
		case IntentNotifyDiscard:
			p.notifier.NotifyDiscard(ctx)
		}
	}
}
