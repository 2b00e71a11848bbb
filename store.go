// store.go: Write-behind snapshot store for resolved configurations
//
// The Store keeps a queryable trail of configuration snapshots: every load,
// reload and reconcile can record the document bag it saw. Writes are
// buffered and flushed in the background so the load path never blocks on
// the database; reads go through a TTL cache so hot lookups skip storage
// entirely. Each snapshot carries a SHA-256 checksum for tamper detection.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

// Snapshot operation labels.
const (
	OpLoad      = "load"
	OpReload    = "reload"
	OpReconcile = "reconcile"
)

// Snapshot is one recorded configuration state.
type Snapshot struct {
	File     string         `json:"file"`
	Op       string         `json:"op"`
	Version  string         `json:"version"`
	Data     map[string]any `json:"data"`
	SavedAt  time.Time      `json:"saved_at"`
	Checksum string         `json:"checksum"` // For tamper detection
}

// StoreConfig configures the snapshot store.
type StoreConfig struct {
	// Path is the backing file. A .jsonl extension selects the JSONL
	// backend; anything else opens a SQLite database, falling back to
	// JSONL when SQLite is unavailable.
	Path string

	// TTL is how long cached reads stay fresh before hitting storage.
	// Default: 5 seconds.
	TTL time.Duration

	// BufferSize is the number of snapshots buffered before a forced
	// flush. Default: 64.
	BufferSize int

	// FlushInterval drives the background flusher. Default: 5 seconds.
	FlushInterval time.Duration
}

// WithDefaults applies sensible defaults to the store configuration.
func (c *StoreConfig) WithDefaults() *StoreConfig {
	cfg := *c
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Second
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 64
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	return &cfg
}

// cachedSnapshot pairs a snapshot with its cache timestamp. The timestamp
// comes from timecache for zero-allocation freshness checks.
type cachedSnapshot struct {
	snap     Snapshot
	cachedAt int64
}

func (c *cachedSnapshot) isExpired(ttl time.Duration) bool {
	return (timecache.CachedTimeNano() - c.cachedAt) > int64(ttl)
}

// Store provides write-behind snapshot persistence with TTL-cached reads.
type Store struct {
	config  StoreConfig
	backend storeBackend

	bufferMu sync.Mutex
	buffer   []Snapshot

	cacheMu sync.RWMutex
	cache   map[string]cachedSnapshot

	flushTicker *time.Ticker
	stopCh      chan struct{}
	closeOnce   sync.Once
}

// NewStore opens the snapshot store, selecting the backend from the path.
func NewStore(config StoreConfig) (*Store, error) {
	cfg := config.WithDefaults()

	backend, err := createStoreBackend(*cfg)
	if err != nil {
		return nil, err
	}

	s := &Store{
		config:  *cfg,
		backend: backend,
		buffer:  make([]Snapshot, 0, cfg.BufferSize),
		cache:   make(map[string]cachedSnapshot),
		stopCh:  make(chan struct{}),
	}

	s.flushTicker = time.NewTicker(cfg.FlushInterval)
	go s.flushLoop()

	return s, nil
}

// Put records a snapshot write-behind. The call never blocks on storage:
// the snapshot is buffered and flushed by the background loop, or
// immediately when the buffer is full.
func (s *Store) Put(file string, data map[string]any, version, op string) {
	if s == nil {
		return
	}

	snap := Snapshot{
		File:    file,
		Op:      op,
		Version: version,
		Data:    cloneBag(data),
		SavedAt: timecache.CachedTime(),
	}
	snap.Checksum = snapshotChecksum(snap)

	// Fresh writes are immediately visible to Get through the cache.
	s.cacheMu.Lock()
	s.cache[file] = cachedSnapshot{snap: snap, cachedAt: timecache.CachedTimeNano()}
	s.cacheMu.Unlock()

	s.bufferMu.Lock()
	s.buffer = append(s.buffer, snap)
	if len(s.buffer) >= s.config.BufferSize {
		_ = s.flushBufferUnsafe() // background durability; errors surface on Flush/Close
	}
	s.bufferMu.Unlock()
}

// Get returns the latest snapshot recorded for a file. Cached entries are
// served until the TTL expires; afterwards the backend is consulted.
func (s *Store) Get(file string) (Snapshot, bool) {
	s.cacheMu.RLock()
	cached, ok := s.cache[file]
	s.cacheMu.RUnlock()
	if ok && !cached.isExpired(s.config.TTL) {
		return cached.snap, true
	}

	// Cache miss or expired: make buffered writes durable first so the
	// backend sees them, then read back.
	_ = s.Flush()
	snap, found, err := s.backend.Load(file)
	if err != nil || !found {
		return Snapshot{}, false
	}

	s.cacheMu.Lock()
	s.cache[file] = cachedSnapshot{snap: snap, cachedAt: timecache.CachedTimeNano()}
	s.cacheMu.Unlock()

	return snap, true
}

// Flush immediately persists all buffered snapshots.
func (s *Store) Flush() error {
	s.bufferMu.Lock()
	defer s.bufferMu.Unlock()
	return s.flushBufferUnsafe()
}

// Close flushes pending snapshots and releases backend resources.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopCh)
		s.flushTicker.Stop()

		if flushErr := s.Flush(); flushErr != nil {
			err = fmt.Errorf("failed to flush snapshot store during close: %w", flushErr)
			return
		}
		err = s.backend.Close()
	})
	return err
}

// flushLoop runs the background write-behind flusher.
func (s *Store) flushLoop() {
	for {
		select {
		case <-s.flushTicker.C:
			_ = s.Flush() // next tick retries; Close surfaces the final error
		case <-s.stopCh:
			return
		}
	}
}

// flushBufferUnsafe writes the buffer to the backend (caller holds bufferMu).
func (s *Store) flushBufferUnsafe() error {
	if len(s.buffer) == 0 {
		return nil
	}

	if err := s.backend.Write(s.buffer); err != nil {
		return fmt.Errorf("failed to write snapshots to backend: %w", err)
	}

	s.buffer = s.buffer[:0]
	return nil
}

// snapshotChecksum creates a tamper-detection checksum using SHA-256.
func snapshotChecksum(snap Snapshot) string {
	data := fmt.Sprintf("%s:%s:%s:%v:%s",
		snap.File, snap.Op, snap.Version, snap.Data,
		snap.SavedAt.Format(time.RFC3339Nano))
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
