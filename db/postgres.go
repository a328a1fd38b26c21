package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"goRaceServer/config"
	"goRaceServer/game"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// PostgresPool is the global PostgreSQL connection pool
	PostgresPool *pgxpool.Pool
)

// UserRecord is one player account row. GameData is stored as a single
// JSONB document and normalized on load.
type UserRecord struct {
	ID             int            `json:"id"`
	Username       string         `json:"username"`
	PasswordHash   string         `json:"-"`
	GameData       *game.GameData `json:"gameData"`
	SuspicionCount int            `json:"suspicionCount"`
	Flagged        bool           `json:"flagged"`
	CreatedAt      time.Time      `json:"createdAt"`
	LastLogin      time.Time      `json:"lastLogin"`
	LastNewsCheck  time.Time      `json:"lastNewsCheck"`
}

// InitPostgres initializes the PostgreSQL connection pool
func InitPostgres() error {
	log.Println("🔌 Connecting to PostgreSQL...")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = config.MaxOpenConns
	poolConfig.MinConns = config.MinIdleConns
	poolConfig.MaxConnLifetime = config.ConnMaxLifetime

	PostgresPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := PostgresPool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ PostgreSQL connected successfully")

	if err := InitSchema(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// ClosePostgres closes the PostgreSQL connection pool
func ClosePostgres() {
	if PostgresPool != nil {
		log.Println("🔌 Closing PostgreSQL connection...")
		PostgresPool.Close()
	}
}

// InitSchema creates the database tables if they don't exist
func InitSchema(ctx context.Context) error {
	log.Println("📋 Initializing database schema...")

	usersSchema := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		game_data JSONB NOT NULL,
		suspicion_count INTEGER NOT NULL DEFAULT 0,
		flagged BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		last_login TIMESTAMP NOT NULL DEFAULT NOW(),
		last_news_check TIMESTAMP NOT NULL DEFAULT 'epoch'
	);

	-- Leaderboard sorts on fields inside the JSONB document
	CREATE INDEX IF NOT EXISTS idx_users_level ON users (((game_data->>'level')::int) DESC);
	`

	if _, err := PostgresPool.Exec(ctx, usersSchema); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	eventsSchema := `
	CREATE TABLE IF NOT EXISTS events (
		id SERIAL PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		icon TEXT NOT NULL DEFAULT '🎉',
		multiplier DOUBLE PRECISION NOT NULL DEFAULT 2,
		discount DOUBLE PRECISION NOT NULL DEFAULT 0.5,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);

	-- Index for the active-event lookup
	CREATE INDEX IF NOT EXISTS idx_events_active ON events (is_active, start_time, end_time);
	`

	if _, err := PostgresPool.Exec(ctx, eventsSchema); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	chatHistorySchema := `
	CREATE TABLE IF NOT EXISTS chat_history (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL,
		username TEXT NOT NULL,
		user_level INTEGER NOT NULL DEFAULT 1,
		user_rating INTEGER NOT NULL DEFAULT 1000,
		message TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_chat_history_timestamp ON chat_history(timestamp DESC);
	`

	if _, err := PostgresPool.Exec(ctx, chatHistorySchema); err != nil {
		return fmt.Errorf("failed to create chat_history table: %w", err)
	}

	newsSchema := `
	CREATE TABLE IF NOT EXISTS news (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT 'Administration',
		category TEXT NOT NULL DEFAULT 'general',
		priority INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_news_active ON news(is_active, priority DESC, created_at DESC);
	`

	if _, err := PostgresPool.Exec(ctx, newsSchema); err != nil {
		return fmt.Errorf("failed to create news table: %w", err)
	}

	securityLogSchema := `
	CREATE TABLE IF NOT EXISTS security_log (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL,
		username TEXT NOT NULL,
		activity TEXT NOT NULL,
		details JSONB,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_security_log_user ON security_log(user_id, created_at DESC);
	`

	if _, err := PostgresPool.Exec(ctx, securityLogSchema); err != nil {
		return fmt.Errorf("failed to create security_log table: %w", err)
	}

	log.Println("✅ Database schema initialized")
	return nil
}

/* =========================
   USERS
========================= */

// CreateUser inserts a new account with its starting game state.
func CreateUser(ctx context.Context, username, passwordHash string, gameData *game.GameData) (*UserRecord, error) {
	dataJSON, err := json.Marshal(gameData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game data: %w", err)
	}

	query := `
		INSERT INTO users (username, password_hash, game_data)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, last_login
	`

	record := &UserRecord{
		Username:     username,
		PasswordHash: passwordHash,
		GameData:     gameData,
	}
	err = PostgresPool.QueryRow(ctx, query, username, passwordHash, dataJSON).Scan(
		&record.ID,
		&record.CreatedAt,
		&record.LastLogin,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("✅ Created user %s (id %d)", username, record.ID)
	return record, nil
}

func scanUser(row pgx.Row) (*UserRecord, error) {
	var record UserRecord
	var dataJSON []byte

	err := row.Scan(
		&record.ID,
		&record.Username,
		&record.PasswordHash,
		&dataJSON,
		&record.SuspicionCount,
		&record.Flagged,
		&record.CreatedAt,
		&record.LastLogin,
		&record.LastNewsCheck,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	record.GameData = &game.GameData{}
	if err := json.Unmarshal(dataJSON, record.GameData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game data: %w", err)
	}
	game.Normalize(record.GameData, time.Now())

	return &record, nil
}

const userColumns = `id, username, password_hash, game_data, suspicion_count, flagged, created_at, last_login, last_news_check`

// GetUserByID fetches an account by primary key. Returns nil when absent.
func GetUserByID(ctx context.Context, userID int) (*UserRecord, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(PostgresPool.QueryRow(ctx, query, userID))
}

// GetUserByUsername fetches an account by username. Returns nil when absent.
func GetUserByUsername(ctx context.Context, username string) (*UserRecord, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(PostgresPool.QueryRow(ctx, query, username))
}

// SaveGameData persists the full game-state document for a player.
func SaveGameData(ctx context.Context, userID int, gameData *game.GameData) error {
	dataJSON, err := json.Marshal(gameData)
	if err != nil {
		return fmt.Errorf("failed to marshal game data: %w", err)
	}

	result, err := PostgresPool.Exec(ctx,
		`UPDATE users SET game_data = $1 WHERE id = $2`,
		dataJSON, userID)
	if err != nil {
		return fmt.Errorf("failed to save game data: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

// UpdateLastLogin stamps the last login time.
func UpdateLastLogin(ctx context.Context, userID int) error {
	_, err := PostgresPool.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// UpdateLastNewsCheck marks all current news as read for a player.
func UpdateLastNewsCheck(ctx context.Context, userID int) error {
	_, err := PostgresPool.Exec(ctx, `UPDATE users SET last_news_check = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to update last news check: %w", err)
	}
	return nil
}

/* =========================
   SUSPICION / SECURITY LOG
========================= */

// IncrementSuspicion bumps a player's suspicion counter by the number of new
// flags and sets the review flag once the threshold is crossed. Returns the
// new counter value.
func IncrementSuspicion(ctx context.Context, userID, delta, threshold int) (int, error) {
	var count int
	err := PostgresPool.QueryRow(ctx, `
		UPDATE users
		SET suspicion_count = suspicion_count + $1,
		    flagged = flagged OR (suspicion_count + $1 >= $2)
		WHERE id = $3
		RETURNING suspicion_count
	`, delta, threshold, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to increment suspicion: %w", err)
	}
	return count, nil
}

// LogSuspiciousActivity records one anti-cheat flag for operator review.
func LogSuspiciousActivity(ctx context.Context, userID int, username, activity string, details map[string]interface{}) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal details: %w", err)
	}

	_, err = PostgresPool.Exec(ctx, `
		INSERT INTO security_log (user_id, username, activity, details)
		VALUES ($1, $2, $3, $4)
	`, userID, username, activity, detailsJSON)
	if err != nil {
		return fmt.Errorf("failed to log suspicious activity: %w", err)
	}

	log.Printf("🚨 [SECURITY] user %s: %s", username, activity)
	return nil
}

/* =========================
   LEADERBOARD
========================= */

// LeaderboardEntry is one leaderboard row.
type LeaderboardEntry struct {
	Position   int     `json:"position"`
	Username   string  `json:"username"`
	Wins       int     `json:"wins"`
	TotalRaces int     `json:"totalRaces"`
	WinRate    float64 `json:"winRate"`
	Money      int     `json:"money"`
	Level      int     `json:"level"`
	Experience int     `json:"experience"`
	Rating     int     `json:"rating"`
}

// GetLeaderboard returns one page of players sorted by level desc,
// experience desc, money desc.
func GetLeaderboard(ctx context.Context, limit, skip int) ([]LeaderboardEntry, error) {
	query := `
		SELECT username,
		       COALESCE((game_data->'stats'->>'wins')::int, 0),
		       COALESCE((game_data->'stats'->>'totalRaces')::int, 0),
		       COALESCE((game_data->>'money')::int, 0),
		       COALESCE((game_data->>'level')::int, 1),
		       COALESCE((game_data->>'experience')::int, 0),
		       COALESCE((game_data->>'rating')::int, 1000)
		FROM users
		ORDER BY (game_data->>'level')::int DESC,
		         (game_data->>'experience')::int DESC,
		         (game_data->>'money')::int DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := PostgresPool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	position := skip
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(
			&entry.Username,
			&entry.Wins,
			&entry.TotalRaces,
			&entry.Money,
			&entry.Level,
			&entry.Experience,
			&entry.Rating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		position++
		entry.Position = position
		if entry.TotalRaces > 0 {
			entry.WinRate = float64(entry.Wins) / float64(entry.TotalRaces) * 100
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

/* =========================
   HEALTH CHECK
========================= */

// HealthCheckPostgres performs a PostgreSQL health check
func HealthCheckPostgres(ctx context.Context) error {
	if PostgresPool == nil {
		return fmt.Errorf("PostgreSQL connection pool not initialized")
	}
	return PostgresPool.Ping(ctx)
}
