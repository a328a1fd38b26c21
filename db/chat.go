package db

import (
	"context"
	"fmt"
	"time"
)

/* =========================
   CHAT HISTORY
========================= */

// ChatHistoryRecord represents a chat message
type ChatHistoryRecord struct {
	ID         int       `json:"id"`
	UserID     int       `json:"userId"`
	Username   string    `json:"username"`
	UserLevel  int       `json:"userLevel"`
	UserRating int       `json:"userRating"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// StoreChatMessage stores a chat message in PostgreSQL
func StoreChatMessage(ctx context.Context, record *ChatHistoryRecord) error {
	query := `
		INSERT INTO chat_history (user_id, username, user_level, user_rating, message, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := PostgresPool.QueryRow(ctx, query,
		record.UserID,
		record.Username,
		record.UserLevel,
		record.UserRating,
		record.Message,
		record.Timestamp,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to store chat message: %w", err)
	}
	return nil
}

// GetRecentChatMessages retrieves up to limit messages, optionally only
// those older than before, in chronological order (oldest first).
func GetRecentChatMessages(ctx context.Context, limit int, before *time.Time) ([]*ChatHistoryRecord, error) {
	query := `
		SELECT id, user_id, username, user_level, user_rating, message, timestamp
		FROM chat_history
		WHERE ($2::timestamp IS NULL OR timestamp < $2)
		ORDER BY timestamp DESC
		LIMIT $1
	`

	rows, err := PostgresPool.Query(ctx, query, limit, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var records []*ChatHistoryRecord
	for rows.Next() {
		var record ChatHistoryRecord
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Username,
			&record.UserLevel,
			&record.UserRating,
			&record.Message,
			&record.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	// Reverse to get chronological order (oldest first)
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return records, nil
}

/* =========================
   NEWS
========================= */

// NewsRecord represents a news/announcement entry
type NewsRecord struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    string     `json:"author"`
	Category  string     `json:"category"`
	Priority  int        `json:"priority"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// GetActiveNews returns active, unexpired news sorted by priority then
// recency. An empty category means all categories.
func GetActiveNews(ctx context.Context, limit int, category string) ([]*NewsRecord, error) {
	query := `
		SELECT id, title, content, author, category, priority, is_active, created_at, expires_at
		FROM news
		WHERE is_active = TRUE
		  AND (expires_at IS NULL OR expires_at >= NOW())
		  AND ($2 = '' OR category = $2)
		ORDER BY priority DESC, created_at DESC
		LIMIT $1
	`

	rows, err := PostgresPool.Query(ctx, query, limit, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	defer rows.Close()

	var records []*NewsRecord
	for rows.Next() {
		var record NewsRecord
		if err := rows.Scan(
			&record.ID,
			&record.Title,
			&record.Content,
			&record.Author,
			&record.Category,
			&record.Priority,
			&record.IsActive,
			&record.CreatedAt,
			&record.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// CountUnreadNews counts active news created after the player's last check.
func CountUnreadNews(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := PostgresPool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM news
		WHERE is_active = TRUE
		  AND created_at > $1
		  AND (expires_at IS NULL OR expires_at >= NOW())
	`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread news: %w", err)
	}
	return count, nil
}

// CreateNews inserts a news entry and fills in its ID.
func CreateNews(ctx context.Context, record *NewsRecord) error {
	query := `
		INSERT INTO news (title, content, author, category, priority, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := PostgresPool.QueryRow(ctx, query,
		record.Title,
		record.Content,
		record.Author,
		record.Category,
		record.Priority,
		record.ExpiresAt,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}

	record.IsActive = true
	return nil
}
