// loader.go: Lifecycle facade tying bootstrap, parse, resolve and update
//
// A Loader owns one config file for one target type: construction
// bootstraps the file from the bundled default when absent, parses and
// resolves it, and optionally runs the version-gated update first. Reload
// and Update are caller-driven; the held object is swapped atomically and a
// failed reload keeps the last good object visible.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"io/fs"
	"os"
	"sync"
	"sync/atomic"

	"github.com/agilira/go-errors"
)

// Options configures a Loader.
type Options struct {
	// File is the on-disk config file owned by this loader.
	File string

	// Resource is the path of the bundled default document, resolved
	// against Resources (or the OS filesystem when Resources is nil).
	Resource string

	// Resources is the filesystem bundled defaults are read from.
	// Typically an embed.FS; nil reads Resource as an OS path.
	Resources fs.FS

	// AutoUpdate runs reconcile-then-reload once during construction.
	AutoUpdate bool

	// Logger receives soft warnings and lifecycle info. Nil disables
	// logging without changing behavior.
	Logger Logger

	// Store optionally records resolved snapshots write-behind.
	Store *Store
}

// WithDefaults normalizes the options.
func (o *Options) WithDefaults() *Options {
	opts := *o
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	return &opts
}

// Loader is the lifecycle object exposed to callers. It is safe for
// concurrent Get; Reload and Update must be serialized by the caller or
// rely on the internal mutex, which serializes them against each other.
type Loader[T any] struct {
	opts    Options
	schema  *Schema[T]
	format  ConfigFormat
	updater *Updater

	mu      sync.Mutex // serializes Reload/Update swaps
	current atomic.Pointer[T]
}

// NewLoader constructs the loader, bootstrapping the target file from the
// bundled default when it does not exist, then loading it. With AutoUpdate
// set, a version-gated reconcile runs before the first load. Any failure is
// fatal: a Loader is never returned alongside an invalid config.
func NewLoader[T any](schema *Schema[T], opts Options) (*Loader[T], error) {
	if schema == nil {
		return nil, errors.New(ErrCodeInvalidConfig, "schema cannot be nil")
	}
	if opts.File == "" {
		return nil, errors.New(ErrCodeInvalidConfig, "target file cannot be empty")
	}

	normalized := opts.WithDefaults()
	format := DetectFormat(normalized.File)
	if format == FormatUnknown {
		return nil, errors.New(ErrCodeUnsupportedFormat, "cannot determine config format").
			WithContext("file", normalized.File)
	}

	updater := NewUpdater(normalized.Resources, normalized.Logger)
	if normalized.Store != nil {
		updater.WithStore(normalized.Store)
	}

	l := &Loader[T]{
		opts:    *normalized,
		schema:  schema,
		format:  format,
		updater: updater,
	}

	if normalized.Resource != "" {
		if _, err := updater.Bootstrap(normalized.Resource, normalized.File); err != nil {
			return nil, err
		}
		if normalized.AutoUpdate {
			if _, err := updater.Reconcile(normalized.Resource, normalized.File); err != nil {
				return nil, err
			}
		}
	}

	if err := l.load(OpLoad); err != nil {
		return nil, err
	}
	return l, nil
}

// Get returns the currently held config object. The pointer is stable; a
// later Reload publishes a new object rather than mutating this one.
func (l *Loader[T]) Get() *T {
	return l.current.Load()
}

// Path returns the config file path this loader owns.
func (l *Loader[T]) Path() string { return l.opts.File }

// Format returns the detected document format.
func (l *Loader[T]) Format() ConfigFormat { return l.format }

// Reload re-parses and re-resolves the file, replacing the held object
// atomically. On failure the previous object stays visible and the error
// surfaces to the caller.
func (l *Loader[T]) Reload() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(OpReload)
}

// Update runs the version-gated reconcile against the bundled default.
// Returns true when the file was rewritten; callers are expected to Reload
// afterwards to pick up the merged document.
func (l *Loader[T]) Update() (bool, error) {
	if l.opts.Resource == "" {
		return false, errors.New(ErrCodeResourceNotFound, "loader has no bundled default resource")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.updater.Reconcile(l.opts.Resource, l.opts.File)
}

// load reads, parses and resolves the file, then publishes the new object.
func (l *Loader[T]) load(op string) error {
	data, err := os.ReadFile(l.opts.File) // #nosec G304 - config path is caller-controlled by design
	if err != nil {
		return errors.Wrap(err, ErrCodeStructure, "config file not readable").
			WithContext("file", l.opts.File)
	}

	bag, err := ParseDocument(data, l.format)
	if err != nil {
		return err
	}

	cfg, err := l.schema.Resolve(bag)
	if err != nil {
		return err
	}

	l.current.Store(cfg)

	if l.opts.Store != nil {
		l.opts.Store.Put(l.opts.File, bag, documentVersion(bag).String(), op)
	}
	return nil
}
