// Package store persists analysis sessions in BadgerDB. A session holds the
// raw GEDCOM and match-table text so an analysis can be recomputed at any
// time; parsed trees are never stored.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionPrefix = "session:"

type Config struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path     string
	InMemory bool
	// SyncWrites trades throughput for durability.
	SyncWrites bool
	// Logger receives BadgerDB's own logging. Nil disables it.
	Logger *zerolog.Logger
}

func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

func InMemoryConfig() Config {
	return Config{InMemory: true}
}

type Session struct {
	ID          string    `json:"id"`
	TreeSource  string    `json:"treeSource,omitempty"`
	MatchSource string    `json:"matchSource,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SessionStore struct {
	db  *badger.DB
	now func() time.Time
}

type badgerLogger struct {
	logger *zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}

func Open(cfg Config) (*SessionStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent session store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create session store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &SessionStore{db: db, now: time.Now}, nil
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}

func key(id string) []byte {
	return []byte(sessionPrefix + id)
}

// Create stores a new empty session under id.
func (s *SessionStore) Create(id string) (*Session, error) {
	now := s.now().UTC()
	sess := &Session{ID: id, CreatedAt: now, UpdatedAt: now}
	if err := s.put(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionStore) Get(id string) (*Session, error) {
	var sess Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return &sess, nil
}

// Update loads the session, applies fn and writes it back in one
// transaction.
func (s *SessionStore) Update(id string, fn func(*Session)) (*Session, error) {
	var sess Session
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		}); err != nil {
			return err
		}

		fn(&sess)
		sess.UpdatedAt = s.now().UTC()

		data, err := json.Marshal(&sess)
		if err != nil {
			return err
		}
		return txn.Set(key(id), data)
	})
	if err != nil {
		return nil, fmt.Errorf("update session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *SessionStore) Delete(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key(id))
	})
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// List returns every session ID in key order.
func (s *SessionStore) List() ([]string, error) {
	ids := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return ids, nil
}

func (s *SessionStore) put(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(sess.ID), data)
	})
}
