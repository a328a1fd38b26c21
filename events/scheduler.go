package events

import (
	"context"
	"log"
	"math/rand"
	"time"

	"goRaceServer/config"
	"goRaceServer/db"
	"goRaceServer/game"
	"goRaceServer/state"
)

// Announcer pushes event lifecycle notices to connected players. Wired to
// the chat hub in main so this package does not import ws.
type Announcer func(event *game.Event, started bool)

// Scheduler owns the global event lifecycle: it expires past events, waits
// out the cooldown, and rolls a spawn chance each tick. It is the only
// writer of state.Server.Events.
type Scheduler struct {
	rng      *rand.Rand
	announce Announcer
}

func NewScheduler(announce Announcer) *Scheduler {
	return &Scheduler{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		announce: announce,
	}
}

// Bootstrap loads the active event and the last event end time from
// PostgreSQL so the cooldown survives restarts.
func (s *Scheduler) Bootstrap(ctx context.Context) error {
	now := time.Now()

	event, err := db.GetCurrentEvent(ctx, now)
	if err != nil {
		return err
	}
	state.Server.Events.Set(event)
	if event != nil {
		log.Printf("📋 Resumed active event %q until %s", event.Title, event.EndTime.Format(time.RFC3339))
	}

	lastEnd, err := db.GetLastEventEnd(ctx)
	if err != nil {
		return err
	}
	if !lastEnd.IsZero() {
		state.Server.Events.MarkEnded(lastEnd)
	}

	if err := db.CacheCurrentEvent(ctx, event); err != nil {
		log.Printf("⚠️ Failed to mirror event to Redis: %v", err)
	}
	return nil
}

// Run ticks until ctx is cancelled. Start it in its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("✅ Event scheduler started (tick %s, cooldown %s, spawn chance %.0f%%)",
		config.EventCheckInterval, config.EventCooldown, config.EventSpawnChance*100)

	ticker := time.NewTicker(config.EventCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("🔌 Event scheduler stopped")
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	if _, err := db.ExpireAllPast(ctx, now); err != nil {
		log.Printf("⚠️ Event expiry sweep failed: %v", err)
	}

	if state.Server.Events.Current(now) != nil {
		return // an event is running, nothing to spawn
	}

	// Drop a cached event whose window has closed.
	if ended := state.Server.Events.TakeExpired(now); ended != nil {
		if err := db.CacheCurrentEvent(ctx, nil); err != nil {
			log.Printf("⚠️ Failed to clear event mirror: %v", err)
		}
		if s.announce != nil {
			s.announce(ended, false)
		}
	}

	lastEnd := state.Server.Events.LastEventEnd()
	if !lastEnd.IsZero() && now.Sub(lastEnd) < config.EventCooldown {
		return
	}

	if s.rng.Float64() >= config.EventSpawnChance {
		return
	}

	event := s.spawn(ctx, now)
	if event != nil && s.announce != nil {
		s.announce(event, true)
	}
}

func (s *Scheduler) spawn(ctx context.Context, now time.Time) *game.Event {
	template := game.EventCatalog[s.rng.Intn(len(game.EventCatalog))]

	event := &game.Event{
		Type:        template.Type,
		Title:       template.Title,
		Description: template.Description,
		Icon:        template.Icon,
		Multiplier:  template.Multiplier,
		Discount:    template.Discount,
		StartTime:   now,
		EndTime:     now.Add(config.EventDuration),
	}

	if err := db.CreateEvent(ctx, event); err != nil {
		log.Printf("⚠️ Failed to create event: %v", err)
		return nil
	}

	state.Server.Events.Set(event)
	if err := db.CacheCurrentEvent(ctx, event); err != nil {
		log.Printf("⚠️ Failed to mirror event to Redis: %v", err)
	}
	return event
}
