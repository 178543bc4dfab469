// Package storage provides SQLite-based persistence for game records,
// replays, the leaderboard, and the last-played configuration.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished game.
type GameRecord struct {
	ID           int64
	Player       string
	Mode         string
	Difficulty   string
	Score        int
	Level        int
	DurationSecs int
	Reason       string
	ReplayID     string // Empty when no replay was saved
	CreatedAt    time.Time
}

// ReplayMeta describes a stored replay without its payload.
type ReplayMeta struct {
	ID        string
	Player    string
	Mode      string
	Score     int
	Size      int
	CreatedAt time.Time
}

// LeaderboardEntry is one row of the per-mode leaderboard, keyed by
// (player, mode).
type LeaderboardEntry struct {
	Player    string
	Mode      string
	BestScore int
	BestLevel int
	Games     int
	UpdatedAt time.Time
}

// GameStats contains aggregated statistics for one game mode.
type GameStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS game_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL DEFAULT '',
			replay_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_records_mode ON game_records(mode);
		CREATE INDEX IF NOT EXISTS idx_records_top ON game_records(mode, score DESC);

		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS leaderboard (
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			best_score INTEGER NOT NULL,
			best_level INTEGER NOT NULL,
			games INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, mode)
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_top ON leaderboard(mode, best_score DESC);

		CREATE TABLE IF NOT EXISTS saved_config (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecord stores a finished game and returns the inserted ID.
func (s *Store) SaveRecord(rec GameRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO game_records (player, mode, difficulty, score, level, duration_secs, reason, replay_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Player, rec.Mode, rec.Difficulty, rec.Score, rec.Level, rec.DurationSecs, rec.Reason, rec.ReplayID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRecords retrieves the most recent game records.
func (s *Store) RecentRecords(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, mode, difficulty, score, level, duration_secs, reason, replay_id, created_at
		 FROM game_records
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Mode, &r.Difficulty, &r.Score, &r.Level,
			&r.DurationSecs, &r.Reason, &r.ReplayID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// TopRecords retrieves the best scores for one mode, descending.
func (s *Store) TopRecords(mode string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, mode, difficulty, score, level, duration_secs, reason, replay_id, created_at
		 FROM game_records
		 WHERE mode = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Mode, &r.Difficulty, &r.Score, &r.Level,
			&r.DurationSecs, &r.Reason, &r.ReplayID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// SaveReplay stores a serialized replay log under its ID.
func (s *Store) SaveReplay(id, player, mode string, score int, data []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO replays (id, player, mode, score, data) VALUES (?, ?, ?, ?, ?)`,
		id, player, mode, score, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return nil
}

// LoadReplay retrieves a replay payload by ID. Returns nil data when
// no replay with that ID exists.
func (s *Store) LoadReplay(id string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM replays WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load replay: %w", err)
	}
	return data, nil
}

// ListReplays retrieves stored replay metadata, newest first.
func (s *Store) ListReplays(limit int) ([]ReplayMeta, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, mode, score, LENGTH(data), created_at
		 FROM replays
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var metas []ReplayMeta
	for rows.Next() {
		var m ReplayMeta
		var createdAt any
		if err := rows.Scan(&m.ID, &m.Player, &m.Mode, &m.Score, &m.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		metas = append(metas, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return metas, nil
}

// DeleteReplay removes a stored replay.
func (s *Store) DeleteReplay(id string) error {
	_, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	return nil
}

// UpsertLeaderboard records a finished game on the leaderboard. The
// best score and level only move up; the games counter always
// increments.
func (s *Store) UpsertLeaderboard(player, mode string, score, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO leaderboard (player, mode, best_score, best_level, games, updated_at)
		 VALUES (?, ?, ?, ?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(player, mode) DO UPDATE SET
			best_score = MAX(best_score, excluded.best_score),
			best_level = MAX(best_level, excluded.best_level),
			games = games + 1,
			updated_at = CURRENT_TIMESTAMP`,
		player, mode, score, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update leaderboard: %w", err)
	}
	return nil
}

// Leaderboard retrieves the top entries for one mode, or for all modes
// when mode is empty.
func (s *Store) Leaderboard(mode string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT player, mode, best_score, best_level, games, updated_at
	          FROM leaderboard ORDER BY best_score DESC LIMIT ?`
	args := []any{limit}
	if mode != "" {
		query = `SELECT player, mode, best_score, best_level, games, updated_at
		         FROM leaderboard WHERE mode = ? ORDER BY best_score DESC LIMIT ?`
		args = []any{mode, limit}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var updatedAt any
		if err := rows.Scan(&e.Player, &e.Mode, &e.BestScore, &e.BestLevel, &e.Games, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// SaveConfig stores the last-played configuration as an opaque blob.
func (s *Store) SaveConfig(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saved_config (id, data, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save config: %w", err)
	}
	return nil
}

// LoadConfig retrieves the saved configuration blob, or nil when none
// was saved yet.
func (s *Store) LoadConfig() ([]byte, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM saved_config WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load config: %w", err)
	}
	return []byte(data), nil
}

// GetGameStats retrieves aggregated statistics for one mode.
func (s *Store) GetGameStats(mode string) (*GameStats, error) {
	stats := &GameStats{Mode: mode}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM game_records WHERE mode = ?`,
		mode,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM game_records WHERE mode = ? ORDER BY created_at DESC LIMIT 1`,
		mode,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string
// for DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
