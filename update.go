// update.go: Version-gated config file reconciliation for Yacla
//
// The Updater decides whether a user's on-disk config file is behind the
// bundled default and, if so, rewrites it with the merged document. The
// comparison is the dotted version under the reserved `version` key; a file
// at or ahead of the default is never touched, which makes Reconcile
// idempotent. The rewrite is atomic: the merged document is serialized fully
// in memory, written to a temp file, then renamed over the target, so a
// crash mid-update never leaves a truncated config behind.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/agilira/go-errors"
)

// Updater reconciles an on-disk configuration file against a bundled
// default document.
type Updater struct {
	resources fs.FS // nil means read resource paths from the OS filesystem
	logger    Logger
	store     *Store // optional snapshot trail
}

// NewUpdater creates an Updater. resources may be nil to read bundled
// defaults straight from disk (an embed.FS is the usual non-nil choice).
func NewUpdater(resources fs.FS, logger Logger) *Updater {
	return &Updater{resources: resources, logger: ensureLogger(logger)}
}

// WithStore attaches a snapshot store; reconcile events are recorded there.
func (u *Updater) WithStore(store *Store) *Updater {
	u.store = store
	return u
}

// readResource loads the bundled default bytes.
func (u *Updater) readResource(resourcePath string) ([]byte, error) {
	var data []byte
	var err error
	if u.resources != nil {
		data, err = fs.ReadFile(u.resources, resourcePath)
	} else {
		data, err = os.ReadFile(resourcePath) // #nosec G304 - resource path is caller-controlled by design
	}
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeResourceNotFound, "bundled default not found").
			WithContext("resource", resourcePath)
	}
	return data, nil
}

// Reconcile compares the versions of the bundled default at resourcePath and
// the on-disk document at targetFile. When the file is behind, it rewrites
// targetFile with the merged document and returns true; otherwise it returns
// false and leaves the file bytes untouched. Both documents must have a
// mapping root or Reconcile fails with a structure error.
func (u *Updater) Reconcile(resourcePath, targetFile string) (bool, error) {
	defBytes, err := u.readResource(resourcePath)
	if err != nil {
		return false, err
	}

	curBytes, err := os.ReadFile(targetFile) // #nosec G304 - target path is caller-controlled by design
	if err != nil {
		return false, errors.Wrap(err, ErrCodeStructure, "config file not readable").
			WithContext("file", targetFile)
	}

	format := DetectFormat(targetFile)
	if format == FormatUnknown {
		return false, errors.New(ErrCodeUnsupportedFormat, "cannot determine config format").
			WithContext("file", targetFile)
	}

	defBag, err := ParseDocument(defBytes, format)
	if err != nil {
		return false, errors.Wrap(err, ErrCodeStructure, "bundled default is not a valid document").
			WithContext("resource", resourcePath)
	}
	curBag, err := ParseDocument(curBytes, format)
	if err != nil {
		return false, errors.Wrap(err, ErrCodeStructure, "config file is not a valid document").
			WithContext("file", targetFile)
	}

	defVersion := documentVersion(defBag)
	curVersion := documentVersion(curBag)
	if curVersion.Compare(defVersion) >= 0 {
		return false, nil
	}

	u.logger.Infof("updating %s: %s -> %s", targetFile, curVersion, defVersion)

	merged, err := u.mergeDocuments(format, defBytes, curBytes, defBag, curBag)
	if err != nil {
		return false, err
	}

	if err := atomicWriteFile(targetFile, merged); err != nil {
		return false, err
	}

	if u.store != nil {
		u.store.Put(targetFile, MergeBags(defBag, curBag), defVersion.String(), OpReconcile)
	}

	return true, nil
}

// mergeDocuments produces the merged document text for the target format.
// YAML merges on the node tree so user comments survive; JSON rewrites the
// default document's bytes, which keeps the shipped formatting as the base.
func (u *Updater) mergeDocuments(format ConfigFormat, defBytes, curBytes []byte, defBag, curBag map[string]any) ([]byte, error) {
	switch format {
	case FormatYAML:
		defTree, err := parseYAMLTree(defBytes)
		if err != nil {
			return nil, err
		}
		curTree, err := parseYAMLTree(curBytes)
		if err != nil {
			return nil, err
		}
		return emitYAMLTree(mergeMappingNodes(defTree, curTree))
	case FormatJSON:
		out, err := mergeJSONBytes(defBytes, defBag, curBag)
		if err != nil {
			return nil, errors.Wrap(err, ErrCodeIOError, "failed to merge JSON documents")
		}
		return out, nil
	default:
		return nil, errors.New(ErrCodeUnsupportedFormat, "unsupported format: "+format.String())
	}
}

// Bootstrap copies the bundled default verbatim to targetFile when the file
// does not exist yet. Returns true when a copy happened. A missing resource
// is fatal; an existing target is a no-op.
func (u *Updater) Bootstrap(resourcePath, targetFile string) (bool, error) {
	if _, err := os.Stat(targetFile); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrap(err, ErrCodeIOError, "cannot stat config file").
			WithContext("file", targetFile)
	}

	data, err := u.readResource(resourcePath)
	if err != nil {
		return false, err
	}

	if err := atomicWriteFile(targetFile, data); err != nil {
		return false, err
	}

	u.logger.Infof("bootstrapped %s from bundled default", targetFile)
	return true, nil
}

// atomicWriteFile writes data via temp file + rename so readers never see a
// partially written config.
func atomicWriteFile(path string, data []byte) error {
	tempPath := path + ".tmp." + fmt.Sprintf("%d", time.Now().UnixNano())

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return errors.Wrap(err, ErrCodeIOError, "failed to write temp file").
			WithContext("path", tempPath)
	}

	if err := os.Rename(tempPath, path); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil && !os.IsNotExist(removeErr) {
			fmt.Fprintf(os.Stderr, "yacla: failed to cleanup temp file %s: %v\n", tempPath, removeErr)
		}
		return errors.Wrap(err, ErrCodeIOError, "failed to rename temp file").
			WithContext("path", path)
	}

	return nil
}
