// Package storage persists engine state in BadgerDB: user preferences and
// an archive of finished games. The engine runs fine without a store; the
// UCI driver simply skips archiving when none is attached.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	gameKeyPrefix  = "game:"
)

// Preferences stores persistent engine settings.
type Preferences struct {
	LogLevel     string    `json:"log_level"`
	ArchiveGames bool      `json:"archive_games"`
	LastUsed     time.Time `json:"last_used"`
}

// DefaultPreferences returns the default engine settings.
func DefaultPreferences() *Preferences {
	return &Preferences{
		LogLevel:     "info",
		ArchiveGames: true,
		LastUsed:     time.Now(),
	}
}

// GameRecord is one archived game: the position it started from and the
// moves played, in both UCI and SAN form.
type GameRecord struct {
	ID       string    `json:"id"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	SAN      []string  `json:"san"`
	FinalFEN string    `json:"final_fen"`
	Result   string    `json:"result,omitempty"`
	SavedAt  time.Time `json:"saved_at"`
}

// Store wraps BadgerDB for persistent storage.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store at the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Badger's own logging is too chatty for a UCI process

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage at %s: %w", dir, err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SavePreferences persists the engine settings.
func (s *Store) SavePreferences(prefs *Preferences) error {
	return s.setJSON(keyPreferences, prefs)
}

// LoadPreferences returns the stored settings, or defaults if none exist.
func (s *Store) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	err := s.getJSON(keyPreferences, prefs)
	if err == badger.ErrKeyNotFound {
		return DefaultPreferences(), nil
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// SaveGame archives a finished game. An empty ID is replaced with a
// timestamp-derived one.
func (s *Store) SaveGame(rec *GameRecord) error {
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now()
	}
	return s.setJSON(gameKeyPrefix+rec.ID, rec)
}

// LoadGame returns the archived game with the given ID.
func (s *Store) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}
	if err := s.getJSON(gameKeyPrefix+id, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Games returns all archived games.
func (s *Store) Games() ([]GameRecord, error) {
	var records []GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gameKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Store) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *Store) getJSON(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
