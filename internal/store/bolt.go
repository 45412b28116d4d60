package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/pkg/utils"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("preferences")

// Bolt is a Store backed by a BoltDB file.
type Bolt struct {
	notifier

	db   *bolt.DB
	path string
}

// OpenBolt opens or creates the database at path and ensures the
// preferences bucket exists. The file is locked for the life of the store.
func OpenBolt(path string) (*Bolt, error) {
	if err := utils.EnsureParentDir(path); err != nil {
		return nil, err
	}

	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, apperrors.NewStoreLockedError(path, err)
		}
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Bolt{db: db, path: path}, nil
}

// Path returns the database file path.
func (b *Bolt) Path() string {
	return b.path
}

func (b *Bolt) get(key string) ([]byte, bool) {
	var raw []byte

	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			// bbolt values are only valid inside the transaction.
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return nil, false
	}

	return raw, true
}

// GetString implements Store.
func (b *Bolt) GetString(key, def string) string {
	raw, ok := b.get(key)
	if !ok {
		return def
	}
	return decodeString(raw, def)
}

// GetInt implements Store.
func (b *Bolt) GetInt(key string, def int) int {
	raw, ok := b.get(key)
	if !ok {
		return def
	}
	return decodeInt(raw, def)
}

// GetBool implements Store.
func (b *Bolt) GetBool(key string, def bool) bool {
	raw, ok := b.get(key)
	if !ok {
		return def
	}
	return decodeBool(raw, def)
}

// GetStrings implements Store.
func (b *Bolt) GetStrings(key string, def []string) []string {
	raw, ok := b.get(key)
	if !ok {
		return def
	}
	return decodeStrings(raw, def)
}

// Contains implements Store.
func (b *Bolt) Contains(key string) bool {
	_, ok := b.get(key)
	return ok
}

func (b *Bolt) put(key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return apperrors.NewStoreWriteError(key, err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
	if err != nil {
		return apperrors.NewStoreWriteError(key, err)
	}

	b.notify(key)
	return nil
}

// PutString implements Store.
func (b *Bolt) PutString(key, value string) error { return b.put(key, value) }

// PutInt implements Store.
func (b *Bolt) PutInt(key string, value int) error { return b.put(key, value) }

// PutBool implements Store.
func (b *Bolt) PutBool(key string, value bool) error { return b.put(key, value) }

// PutStrings implements Store. A nil slice is stored as an empty set.
func (b *Bolt) PutStrings(key string, value []string) error {
	if value == nil {
		value = []string{}
	}
	return b.put(key, value)
}

// Remove implements Store.
func (b *Bolt) Remove(key string) error {
	existed := false

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		existed = bucket.Get([]byte(key)) != nil
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return apperrors.NewStoreWriteError(key, err)
	}

	if existed {
		b.notify(key)
	}
	return nil
}

// All implements Store.
func (b *Bolt) All() (map[string]any, error) {
	out := make(map[string]any)

	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			decoded, err := decodeAny(v)
			if err != nil {
				return err
			}
			out[string(k)] = decoded
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Close releases the database lock.
func (b *Bolt) Close() error {
	return b.db.Close()
}
