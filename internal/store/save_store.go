package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/gridironsim/franchise-flow/internal/domain"
)

// ErrSlotNotFound is returned when a save slot id does not exist.
var ErrSlotNotFound = errors.New("save slot not found")

// SaveSlot describes one persisted franchise checkpoint.
type SaveSlot struct {
	ID        string    `db:"id"`
	Week      int       `db:"week"`
	CreatedAt time.Time `db:"created_at"`
}

// SaveStore persists franchise checkpoints to SQLite.
type SaveStore struct {
	conn *sqlx.DB
}

// OpenSaveStore opens or creates a SQLite database at the given path.
func OpenSaveStore(path string) (*SaveStore, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SaveStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SaveStore) Close() error {
	return s.conn.Close()
}

func (s *SaveStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS save_slots (
		id TEXT PRIMARY KEY,
		week INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		state_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_save_slots_week ON save_slots(week);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Checkpoint writes a new save slot for the given week.
func (s *SaveStore) Checkpoint(weekNum int, state domain.GameState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	_, err = s.conn.Exec(
		"INSERT INTO save_slots (id, week, created_at, state_json) VALUES (?, ?, ?, ?)",
		uuid.NewString(), weekNum, time.Now().UTC().Format(time.RFC3339), string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert save slot: %w", err)
	}
	return nil
}

// Load reads the franchise state stored under the given slot id.
func (s *SaveStore) Load(id string) (domain.GameState, error) {
	var raw string
	err := s.conn.Get(&raw, "SELECT state_json FROM save_slots WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GameState{}, ErrSlotNotFound
	}
	if err != nil {
		return domain.GameState{}, err
	}

	var state domain.GameState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return domain.GameState{}, fmt.Errorf("decode state: %w", err)
	}
	return state, nil
}

// Latest returns the most recently written slot, if any.
func (s *SaveStore) Latest() (SaveSlot, bool, error) {
	slots, err := s.List()
	if err != nil {
		return SaveSlot{}, false, err
	}
	if len(slots) == 0 {
		return SaveSlot{}, false, nil
	}
	return slots[0], true, nil
}

// List returns slot metadata ordered newest first.
func (s *SaveStore) List() ([]SaveSlot, error) {
	rows, err := s.conn.Queryx("SELECT id, week, created_at FROM save_slots ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []SaveSlot
	for rows.Next() {
		var (
			id      string
			week    int
			created string
		)
		if err := rows.Scan(&id, &week, &created); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("parse slot timestamp: %w", err)
		}
		slots = append(slots, SaveSlot{ID: id, Week: week, CreatedAt: ts})
	}
	return slots, rows.Err()
}

// Delete removes a save slot.
func (s *SaveStore) Delete(id string) error {
	res, err := s.conn.Exec("DELETE FROM save_slots WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSlotNotFound
	}
	return nil
}
