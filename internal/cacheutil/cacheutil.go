// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/keydiff/internal/config"
	"github.com/tfctl/keydiff/internal/differ"
	"github.com/tfctl/keydiff/internal/log"
)

// resultsDir is the cache subdirectory holding computed edit sets.
const resultsDir = "results"

// DefaultCleanHours is the entry age, in hours, past which PurgeCache removes
// cache files when config cache.clean_hours is not set.
const DefaultCleanHours = 168

// Entry represents a cached artifact on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
}

// Dir resolves the base cache directory.
// Precedence:
//  1. KEYDIFF_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/keydiff
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("KEYDIFF_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "keydiff"), true
	}
	return "", false
}

// Enabled returns true unless KEYDIFF_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("KEYDIFF_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// EntryPath returns the absolute path where a cache entry would live given
// subdirectory components and the clear-text key. It also returns true if a
// file currently exists at that path.
func EntryPath(subdirs []string, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(append([]string{base}, append(subdirs, encodeKey(clearKey))...)...)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// PurgeCache removes entries older than config cache.clean_hours. A value of
// zero or less disables cleaning.
func PurgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean_hours", DefaultCleanHours)
	return Purge(cleanHours)
}

// Read attempts to read a cached entry, trimming surrounding whitespace.
func Read(subdirs []string, clearKey string) (*Entry, bool) {
	entry, ok := ReadRaw(subdirs, clearKey)
	if ok {
		entry.Data = bytes.TrimSpace(entry.Data)
	}
	return entry, ok
}

// ReadRaw attempts to read a cached entry byte-for-byte as it was written.
func ReadRaw(subdirs []string, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", clearKey)
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       b,
	}, true
}

// Write stores data for the given key beneath subdirs. Creates directories as needed.
func Write(subdirs []string, clearKey string, data []byte) error {
	if !Enabled() {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	dir := filepath.Join(append([]string{base}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(dir, encodeKey(clearKey))
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", clearKey)
	return nil
}

// ResultKey derives the clear-text key of a diff result from both input
// documents and the diff options fingerprint. Any change to either input or
// to the options yields a different key.
func ResultKey(oldDoc, newDoc []byte, fingerprint string) string {
	return fmt.Sprintf("%s:%s:%s", encodeBytes(oldDoc), encodeBytes(newDoc), fingerprint)
}

// ReadResult returns a cached edit set for key.
func ReadResult(key string) (differ.SectionChanges, bool) {
	entry, ok := Read([]string{resultsDir}, key)
	if !ok {
		return differ.SectionChanges{}, false
	}

	var changes differ.SectionChanges
	if err := json.Unmarshal(entry.Data, &changes); err != nil {
		log.Debugf("cache entry unreadable, ignoring: key=%s err=%v", key, err)
		return differ.SectionChanges{}, false
	}
	return changes, true
}

// WriteResult caches an edit set under key.
func WriteResult(key string, changes differ.SectionChanges) error {
	data, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return Write([]string{resultsDir}, key, data)
}

// encodeKey returns the hex sha256 of input.
func encodeKey(input string) string {
	return encodeBytes([]byte(input))
}

func encodeBytes(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}
