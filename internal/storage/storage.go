package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"todo-man/internal/tasks"
)

// DefaultKey names the slot holding the task list.
const DefaultKey = "todoTasks"

// ErrCorrupt marks a stored value that could not be decoded.
var ErrCorrupt = errors.New("stored task list is corrupt")

// Persister loads and saves the full task list.
type Persister interface {
    Load() ([]tasks.Task, error)
    Save(list []tasks.Task) error
}

// Slot is a single key in a sqlite key-value table, laid out like VS Code's
// state.vscdb: ItemTable(key TEXT PRIMARY KEY, value BLOB).
type Slot struct {
    path   string
    key    string
    db     *sql.DB
    logger zerolog.Logger
}

// Open opens (creating if needed) the database at path and returns the slot for key.
func Open(path, key string) (*Slot, error) {
    if key == "" { key = DefaultKey }
    if path == "" { return nil, errors.New("empty database path") }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return nil, err }
    db, err := sql.Open("sqlite", path)
    if err != nil { return nil, err }
    db.SetMaxOpenConns(1)
    // WAL + busy timeout to avoid lock issues if a second instance is running
    _, _ = db.Exec("PRAGMA busy_timeout=5000")
    _, _ = db.Exec("PRAGMA journal_mode=WAL")
    if _, err := db.Exec("CREATE TABLE IF NOT EXISTS ItemTable (key TEXT PRIMARY KEY, value BLOB)"); err != nil {
        db.Close()
        return nil, fmt.Errorf("init %s: %w", path, err)
    }
    return &Slot{
        path:   path,
        key:    key,
        db:     db,
        logger: log.With().Str("component", "storage").Str("key", key).Logger(),
    }, nil
}

func (s *Slot) Path() string { return s.path }
func (s *Slot) Key() string  { return s.key }

func (s *Slot) Close() error {
    if s == nil || s.db == nil { return nil }
    // Ensure WAL is checkpointed so changes persist to main db file
    _, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
    return s.db.Close()
}

// Load returns the stored list. A missing row is an empty list; an undecodable
// value is an ErrCorrupt error.
func (s *Slot) Load() ([]tasks.Task, error) {
    var raw []byte
    err := s.db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", s.key).Scan(&raw)
    if errors.Is(err, sql.ErrNoRows) {
        s.logger.Debug().Msg("slot empty")
        return []tasks.Task{}, nil
    }
    if err != nil { return nil, fmt.Errorf("read slot %q: %w", s.key, err) }
    list, err := Decode(raw)
    if err != nil { return nil, err }
    s.logger.Debug().Int("tasks", len(list)).Msg("loaded")
    return list, nil
}

// Save overwrites the slot with the JSON encoding of list.
func (s *Slot) Save(list []tasks.Task) error {
    b, err := Encode(list)
    if err != nil { return err }
    if _, err := s.db.Exec("INSERT INTO ItemTable(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value", s.key, b); err != nil {
        return fmt.Errorf("write slot %q: %w", s.key, err)
    }
    s.logger.Debug().Int("tasks", len(list)).Int("bytes", len(b)).Msg("saved")
    return nil
}

// Encode produces the persisted form: a JSON array of {id,text,completed}.
func Encode(list []tasks.Task) ([]byte, error) {
    if list == nil { list = []tasks.Task{} }
    return json.Marshal(list)
}

// Decode parses the persisted form. Blank input decodes to an empty list.
func Decode(b []byte) ([]tasks.Task, error) {
    if strings.TrimSpace(string(b)) == "" { return []tasks.Task{}, nil }
    var list []tasks.Task
    if err := json.Unmarshal(b, &list); err != nil {
        return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
    }
    if list == nil { list = []tasks.Task{} }
    return list, nil
}

// Memory is an in-process Persister. The zero value is an empty slot.
type Memory struct {
    Data  []byte
    Saves int
}

func (m *Memory) Load() ([]tasks.Task, error) {
    if m.Data == nil { return []tasks.Task{}, nil }
    return Decode(m.Data)
}

func (m *Memory) Save(list []tasks.Task) error {
    b, err := Encode(list)
    if err != nil { return err }
    m.Data = b
    m.Saves++
    return nil
}
