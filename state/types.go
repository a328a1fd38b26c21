package state

import (
	"sync"
	"time"

	"goRaceServer/game"
)

// ==============================================================================
// GLOBAL SERVER STATE (Single Source of Truth in-process)
// ==============================================================================
//
// NOTE:
// The database remains authoritative. This package only holds the
// process-wide caches with a defined lifecycle: initialized at startup,
// written solely by the event scheduler, read by request handlers.
//
// ==============================================================================

type GlobalState struct {
	// Subsystems
	Events *EventState

	// Server metadata
	ServerStartTime time.Time
}

func NewGlobalState() *GlobalState {
	return &GlobalState{
		Events:          NewEventState(),
		ServerStartTime: time.Now(),
	}
}

// Server is the process-wide singleton, created in main before anything
// else runs.
var Server = NewGlobalState()

// ==============================================================================
// ACTIVE EVENT STATE
// ==============================================================================

// EventState caches the single active global event. Only the event
// scheduler writes it; handlers read it on the hot path instead of hitting
// the event store per request.
type EventState struct {
	mu sync.RWMutex

	current      *game.Event
	lastEventEnd time.Time
}

func NewEventState() *EventState {
	return &EventState{}
}

// Current returns the cached event if its window covers now, else nil. An
// expired-but-unswept event is never returned as active.
func (s *EventState) Current(now time.Time) *game.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil || !s.current.ActiveAt(now) {
		return nil
	}
	copied := *s.current
	return &copied
}

// Set replaces the cached event (nil clears it).
func (s *EventState) Set(event *game.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event == nil {
		if s.current != nil && s.current.EndTime.After(s.lastEventEnd) {
			s.lastEventEnd = s.current.EndTime
		}
		s.current = nil
		return
	}
	copied := *event
	s.current = &copied
}

// TakeExpired removes and returns a cached event whose window has closed,
// recording its end time. Returns nil when nothing is cached or the cached
// event is still running.
func (s *EventState) TakeExpired(now time.Time) *game.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.ActiveAt(now) {
		return nil
	}
	expired := s.current
	s.current = nil
	if expired.EndTime.After(s.lastEventEnd) {
		s.lastEventEnd = expired.EndTime
	}
	return expired
}

// LastEventEnd returns when the previous event ended, for the scheduler's
// cooldown check. Zero when no event has run since startup.
func (s *EventState) LastEventEnd() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastEventEnd
}

// MarkEnded records the end time of an expired event.
func (s *EventState) MarkEnded(end time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if end.After(s.lastEventEnd) {
		s.lastEventEnd = end
	}
}
