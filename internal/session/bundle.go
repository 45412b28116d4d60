package session

import (
	"sort"
	"sync"
)

// Bundle holds encoded sessions while the host tears down and rebuilds its
// views. It lives only as long as the process and never looks inside the
// blobs.
type Bundle struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{blobs: make(map[string][]byte)}
}

// Put stores blob under key. A nil blob removes the key.
func (b *Bundle) Put(key string, blob []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if blob == nil {
		delete(b.blobs, key)
		return
	}
	b.blobs[key] = append([]byte(nil), blob...)
}

// Get returns the blob stored under key.
func (b *Bundle) Get(key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	blob, ok := b.blobs[key]
	return blob, ok
}

// Take returns the blob stored under key and removes it.
func (b *Bundle) Take(key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	blob, ok := b.blobs[key]
	delete(b.blobs, key)
	return blob, ok
}

func (b *Bundle) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.blobs, key)
}

func (b *Bundle) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.blobs)
}

// Keys returns the stored keys in sorted order.
func (b *Bundle) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, 0, len(b.blobs))
	for k := range b.blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
