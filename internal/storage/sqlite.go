// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/geoquiz/internal/quiz"
)

// ErrNotFound is returned when a game result does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// GameResult is one finished game. Seed and Answers are enough to replay
// it move by move.
type GameResult struct {
	ID         int64
	SessionID  string
	Player     string
	ModeID     string
	Dataset    string
	Difficulty string
	Score      int
	Correct    int
	Rounds     int
	Seed       int64
	Answers    []string
	Settings   quiz.Settings
	CreatedAt  time.Time
}

// ModeStats contains aggregated statistics for a game mode.
type ModeStats struct {
	ModeID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	Accuracy   float64 // correct answers per round played, 0..1
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
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			mode_id TEXT NOT NULL,
			dataset TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			correct INTEGER NOT NULL DEFAULT 0,
			rounds INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL,
			answers TEXT NOT NULL DEFAULT '',
			settings TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_mode ON games(mode_id);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(mode_id, dataset, score DESC);
		CREATE INDEX IF NOT EXISTS idx_games_session ON games(session_id);
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

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// SaveResult records a finished game and returns its row id. A missing
// session id is generated.
func (s *Store) SaveResult(r GameResult) (int64, error) {
	if r.SessionID == "" {
		r.SessionID = NewSessionID()
	}

	answers, err := encodeAnswers(r.Answers)
	if err != nil {
		return 0, err
	}
	settings, err := yaml.Marshal(r.Settings)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode settings: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO games
		 (session_id, player, mode_id, dataset, difficulty, score, correct, rounds, seed, answers, settings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Player, r.ModeID, r.Dataset, r.Difficulty,
		r.Score, r.Correct, r.Rounds, r.Seed, answers, string(settings),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, session_id, player, mode_id, dataset, difficulty,
	score, correct, rounds, seed, answers, settings, created_at`

// Result returns a single game by row id.
func (s *Store) Result(id int64) (*GameResult, error) {
	row := s.db.QueryRow(`SELECT `+resultColumns+` FROM games WHERE id = ?`, id)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: game %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// TopScores retrieves the best N games for a mode, ordered by score
// descending. An empty dataset matches every dataset.
func (s *Store) TopScores(modeID, dataset string, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM games
		 WHERE mode_id = ? AND (? = '' OR dataset = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		modeID, dataset, dataset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// HighScore returns the highest score for a mode and dataset.
// Returns 0 if no games exist.
func (s *Store) HighScore(modeID, dataset string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM games WHERE mode_id = ? AND (? = '' OR dataset = ?)",
		modeID, dataset, dataset,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all games for the given mode.
func (s *Store) ClearScores(modeID string) error {
	_, err := s.db.Exec("DELETE FROM games WHERE mode_id = ?", modeID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ModeStats retrieves aggregated statistics for a single mode.
func (s *Store) ModeStats(modeID string) (*ModeStats, error) {
	all, err := s.queryStats("WHERE mode_id = ?", modeID)
	if err != nil {
		return nil, err
	}
	if st, ok := all[modeID]; ok {
		return st, nil
	}
	return &ModeStats{ModeID: modeID}, nil
}

// AllModeStats retrieves statistics for every mode that has been played.
func (s *Store) AllModeStats() (map[string]*ModeStats, error) {
	return s.queryStats("")
}

func (s *Store) queryStats(where string, args ...any) (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode_id, COUNT(*), MAX(score), AVG(score),
		        COALESCE(SUM(correct), 0), COALESCE(SUM(rounds), 0), MAX(created_at)
		 FROM games `+where+`
		 GROUP BY mode_id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var st ModeStats
		var correct, rounds int64
		var lastPlayed any
		if err := rows.Scan(&st.ModeID, &st.GamesCount, &st.HighScore, &st.AvgScore,
			&correct, &rounds, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if rounds > 0 {
			st.Accuracy = float64(correct) / float64(rounds)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.ModeID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (*GameResult, error) {
	var r GameResult
	var answers, settings string
	var createdAt any
	err := row.Scan(&r.ID, &r.SessionID, &r.Player, &r.ModeID, &r.Dataset, &r.Difficulty,
		&r.Score, &r.Correct, &r.Rounds, &r.Seed, &answers, &settings, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	r.Answers, err = decodeAnswers(answers)
	if err != nil {
		return nil, err
	}
	if settings != "" {
		if err := yaml.Unmarshal([]byte(settings), &r.Settings); err != nil {
			return nil, fmt.Errorf("storage: cannot decode settings: %w", err)
		}
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

func encodeAnswers(answers []string) (string, error) {
	if len(answers) == 0 {
		return "", nil
	}
	data, err := yaml.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode answers: %w", err)
	}
	return string(data), nil
}

func decodeAnswers(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var answers []string
	if err := yaml.Unmarshal([]byte(s), &answers); err != nil {
		return nil, fmt.Errorf("storage: cannot decode answers: %w", err)
	}
	return answers, nil
}

// parseTime handles both time.Time and string datetime values.
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
