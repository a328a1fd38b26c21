package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"goRaceServer/game"

	"github.com/jackc/pgx/v5"
)

/* =========================
   GLOBAL EVENTS
========================= */

// GetCurrentEvent returns the event whose window covers now, or nil. The
// query itself bounds by start/end time, so an expired-but-unswept event is
// never returned as active.
func GetCurrentEvent(ctx context.Context, now time.Time) (*game.Event, error) {
	query := `
		SELECT id, type, title, description, icon, multiplier, discount, start_time, end_time, is_active
		FROM events
		WHERE is_active = TRUE AND start_time <= $1 AND end_time >= $1
		ORDER BY start_time DESC
		LIMIT 1
	`

	var event game.Event
	err := PostgresPool.QueryRow(ctx, query, now).Scan(
		&event.ID,
		&event.Type,
		&event.Title,
		&event.Description,
		&event.Icon,
		&event.Multiplier,
		&event.Discount,
		&event.StartTime,
		&event.EndTime,
		&event.IsActive,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current event: %w", err)
	}

	return &event, nil
}

// CreateEvent inserts a new global event and fills in its ID.
func CreateEvent(ctx context.Context, event *game.Event) error {
	query := `
		INSERT INTO events (type, title, description, icon, multiplier, discount, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING id
	`

	err := PostgresPool.QueryRow(ctx, query,
		event.Type,
		event.Title,
		event.Description,
		event.Icon,
		event.Multiplier,
		event.Discount,
		event.StartTime,
		event.EndTime,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	event.IsActive = true
	log.Printf("✨ Created event %q (id %d) until %s", event.Title, event.ID, event.EndTime.Format(time.RFC3339))
	return nil
}

// ExpireAllPast marks every event whose window has closed as inactive.
// Lazy expiry: reads are already bounded by the window, this sweep just
// keeps the table tidy.
func ExpireAllPast(ctx context.Context, now time.Time) (int64, error) {
	result, err := PostgresPool.Exec(ctx, `
		UPDATE events
		SET is_active = FALSE
		WHERE is_active = TRUE AND end_time < $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire events: %w", err)
	}

	if n := result.RowsAffected(); n > 0 {
		log.Printf("🧹 Expired %d past event(s)", n)
		return n, nil
	}
	return 0, nil
}

// GetLastEventEnd returns the latest end time across all events, so the
// spawn cooldown survives process restarts. Zero time when no events exist.
func GetLastEventEnd(ctx context.Context) (time.Time, error) {
	var end *time.Time
	err := PostgresPool.QueryRow(ctx, `SELECT MAX(end_time) FROM events`).Scan(&end)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last event end: %w", err)
	}
	if end == nil {
		return time.Time{}, nil
	}
	return *end, nil
}
