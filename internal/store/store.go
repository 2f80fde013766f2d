// Package store persists discovery history, the saved archive and the
// signed-in user in an embedded BadgerDB directory.
//
// Each of the three is one JSON blob under its own key, rewritten whole on
// every change. A missing key reads as the empty value.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/dhabedank/lumina/internal/core"
)

// Storage keys. The _v3 suffixes match the profile format of earlier releases.
const (
	HistoryKey = "lumina_history_v3"
	SavedKey   = "lumina_saved_v3"
	UserKey    = "lumina_user"
)

// State is everything loaded at startup.
type State struct {
	History    []core.Session
	SavedLists []core.SavedList
	User       *core.User // nil means guest
}

// Store wraps a BadgerDB handle.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (creating if needed) the store in dir.
func Open(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger})
	return open(opts, logger)
}

// OpenInMemory opens a throwaway store. Used by tests and --ephemeral runs.
func OpenInMemory(logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(badgerLogger{logger})
	return open(opts, logger)
}

func open(opts badger.Options, logger zerolog.Logger) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads history, saved lists and user. Absent keys yield empty values.
func (s *Store) Load(ctx context.Context) (*State, error) {
	state := &State{
		History:    []core.Session{},
		SavedLists: []core.SavedList{},
	}

	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := getJSON(txn, HistoryKey, &state.History); err != nil {
			return err
		}
		if _, err := getJSON(txn, SavedKey, &state.SavedLists); err != nil {
			return err
		}

		var user core.User
		ok, err := getJSON(txn, UserKey, &user)
		if err != nil {
			return err
		}
		if ok {
			state.User = &user
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// JSON null decodes to a nil slice
	if state.History == nil {
		state.History = []core.Session{}
	}
	if state.SavedLists == nil {
		state.SavedLists = []core.SavedList{}
	}

	s.logger.Debug().
		Int("history", len(state.History)).
		Int("saved", len(state.SavedLists)).
		Bool("signed_in", state.User != nil).
		Msg("state loaded")
	return state, nil
}

// Save writes all three values in one transaction. A nil user deletes the
// user key so a later Load cannot tell sign-out from never signed in.
func (s *Store) Save(ctx context.Context, history []core.Session, saved []core.SavedList, user *core.User) error {
	if history == nil {
		history = []core.Session{}
	}
	if saved == nil {
		saved = []core.SavedList{}
	}

	historyData, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	savedData, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("marshal saved lists: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(HistoryKey), historyData); err != nil {
			return fmt.Errorf("set history: %w", err)
		}
		if err := txn.Set([]byte(SavedKey), savedData); err != nil {
			return fmt.Errorf("set saved lists: %w", err)
		}

		if user == nil {
			if err := txn.Delete([]byte(UserKey)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete user: %w", err)
			}
			return nil
		}

		userData, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := txn.Set([]byte(UserKey), userData); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		return nil
	})
}

// SaveUser updates only the user key. Used by the login/logout commands.
func (s *Store) SaveUser(ctx context.Context, user *core.User) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if user == nil {
			if err := txn.Delete([]byte(UserKey)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete user: %w", err)
			}
			return nil
		}
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		return txn.Set([]byte(UserKey), data)
	})
}

// Reset removes every key.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("drop all: %w", err)
	}
	s.logger.Info().Msg("store cleared")
	return nil
}

// getJSON decodes key into out. found is false, and out untouched, when
// the key does not exist.
func getJSON(txn *badger.Txn, key string, out any) (found bool, err error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	err = item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, out); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	})
	return err == nil, err
}
