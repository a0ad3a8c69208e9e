// Package storage provides SQLite-based persistence for sandbox session
// statistics. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Simulation state itself is never stored.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is the record of one finished sandbox run.
type Session struct {
	ID          int64
	SceneID     string
	Preset      string
	Seed        int64
	Cols        int
	Rows        int
	Ticks       int64
	Spawned     int
	Erased      int
	PeakActive  int
	FinalActive int
	Duration    time.Duration
	CreatedAt   time.Time
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

	// Test connection
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			preset TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			cols INTEGER NOT NULL,
			rows INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			erased INTEGER NOT NULL DEFAULT 0,
			peak_active INTEGER NOT NULL DEFAULT 0,
			final_active INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_scene_id ON sessions(scene_id);
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

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions (scene_id, preset, seed, cols, rows, ticks, spawned, erased, peak_active, final_active, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.SceneID, sess.Preset, sess.Seed, sess.Cols, sess.Rows, sess.Ticks,
		sess.Spawned, sess.Erased, sess.PeakActive, sess.FinalActive, sess.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the latest sessions, newest first.
// An empty sceneID returns sessions of every scene.
func (s *Store) RecentSessions(sceneID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, preset, seed, cols, rows, ticks, spawned, erased, peak_active, final_active, duration_ms, created_at
		 FROM sessions
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&sess.ID, &sess.SceneID, &sess.Preset, &sess.Seed, &sess.Cols, &sess.Rows,
			&sess.Ticks, &sess.Spawned, &sess.Erased, &sess.PeakActive, &sess.FinalActive,
			&durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.Duration = time.Duration(durationMs) * time.Millisecond
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// ClearSessions deletes the sessions of a scene, or all sessions when
// sceneID is empty.
func (s *Store) ClearSessions(sceneID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE ? = '' OR scene_id = ?", sceneID, sceneID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// SceneStats contains aggregated statistics for a scene.
type SceneStats struct {
	SceneID       string
	Sessions      int
	TotalTicks    int64
	TotalSpawned  int64
	TotalErased   int64
	PeakActive    int
	TotalDuration time.Duration
	LastPlayed    time.Time
}

// GetSceneStats retrieves aggregated statistics for a specific scene.
func (s *Store) GetSceneStats(sceneID string) (*SceneStats, error) {
	stats := &SceneStats{SceneID: sceneID}

	var durationMs int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(SUM(spawned), 0), COALESCE(SUM(erased), 0),
		        COALESCE(MAX(peak_active), 0), COALESCE(SUM(duration_ms), 0), MAX(created_at)
		 FROM sessions WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Sessions, &stats.TotalTicks, &stats.TotalSpawned, &stats.TotalErased,
		&stats.PeakActive, &durationMs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}
	stats.TotalDuration = time.Duration(durationMs) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllSceneStats retrieves statistics for all scenes that have been played.
func (s *Store) GetAllSceneStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), SUM(ticks), SUM(spawned), SUM(erased), MAX(peak_active), SUM(duration_ms), MAX(created_at)
		 FROM sessions
		 GROUP BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scene stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SceneStats)
	for rows.Next() {
		var st SceneStats
		var durationMs int64
		var lastPlayed any
		if err := rows.Scan(&st.SceneID, &st.Sessions, &st.TotalTicks, &st.TotalSpawned, &st.TotalErased,
			&st.PeakActive, &durationMs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.TotalDuration = time.Duration(durationMs) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.SceneID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
