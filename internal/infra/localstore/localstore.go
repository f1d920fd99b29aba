// Package localstore persists per-account store snapshots in a local bbolt
// file, so a restarted process can rehydrate carts and social state the way a
// returning client rehydrates from its cached storage.
package localstore

import (
	"context"
	"log/slog"

	"sokoni/config"
	"sokoni/internal/errors"

	jsoniter "github.com/json-iterator/go"
	"go.etcd.io/bbolt"
	"go.uber.org/fx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrSnapshotNotFound is returned when no snapshot exists under a key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore reads and writes named JSON snapshots grouped by namespace.
type SnapshotStore interface {
	// Save serializes value and stores it under namespace/key.
	Save(namespace, key string, value any) error

	// Load deserializes the snapshot under namespace/key into out.
	Load(namespace, key string, out any) error

	// Delete removes the snapshot under namespace/key. Missing keys are fine.
	Delete(namespace, key string) error
}

type boltSnapshotStore struct {
	db *bbolt.DB
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the bbolt file and registers its lifecycle hooks.
func New(params Params) (SnapshotStore, error) {
	path := "sokoni.db"
	if params.Config.Snapshot != nil && params.Config.Snapshot.Path != "" {
		path = params.Config.Snapshot.Path
	}

	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot store")
	}

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			params.Logger.Info("snapshot store ready", slog.String("path", path))

			return nil
		},
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})

	return &boltSnapshotStore{db: db}, nil
}

// NewWithDB wraps an already-open bbolt handle. Used by tests and tools that
// manage the file themselves.
func NewWithDB(db *bbolt.DB) SnapshotStore {
	return &boltSnapshotStore{db: db}
}

func (s *boltSnapshotStore) Save(namespace, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(namespace))
		if err != nil {
			return err
		}

		return bucket.Put([]byte(key), data)
	})

	return errors.Wrap(err, "save snapshot")
}

func (s *boltSnapshotStore) Load(namespace, key string, out any) error {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(namespace))
		if bucket == nil {
			return ErrSnapshotNotFound
		}

		raw := bucket.Get([]byte(key))
		if raw == nil {
			return ErrSnapshotNotFound
		}

		// The slice is only valid inside the transaction.
		data = append(data, raw...)

		return nil
	})
	if err != nil {
		return err
	}

	return errors.Wrap(json.Unmarshal(data, out), "unmarshal snapshot")
}

func (s *boltSnapshotStore) Delete(namespace, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(namespace))
		if bucket == nil {
			return nil
		}

		return bucket.Delete([]byte(key))
	})

	return errors.Wrap(err, "delete snapshot")
}
