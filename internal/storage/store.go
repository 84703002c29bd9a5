package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/raphi011/imsctx/internal/ims"
	"github.com/raphi011/imsctx/internal/log"
)

// Options configures a Store.
type Options struct {
	GlobalFile string // global tier, e.g. ~/.config/imsctx/store.toml
	LocalFile  string // local tier, e.g. ./.imsctx.toml
	EnvPrefix  string // environment overlay for merged reads; empty disables it
}

// Store is a two-tier key-value store backed by TOML or YAML files.
//
// Reads with ims.LocationAny see the global tier, overlaid by the local
// tier, overlaid by environment variables. Writes go to exactly one tier
// and replace the value at the path.
//
// Writes hold an flock on "<file>.lock" while the tier is re-read, changed
// and written back, so concurrent processes do not drop each other's keys.
type Store struct {
	opts Options

	mu     sync.RWMutex
	global *koanf.Koanf
	local  *koanf.Koanf
	merged *koanf.Koanf

	txMu sync.Mutex
}

var _ ims.Store = (*Store)(nil)
var _ ims.Locker = (*Store)(nil)

// New creates a Store. Nothing is read until Reload is called.
func New(opts Options) *Store {
	return &Store{
		opts:   opts,
		global: koanf.New(ims.PathDelimiter),
		local:  koanf.New(ims.PathDelimiter),
		merged: koanf.New(ims.PathDelimiter),
	}
}

// Reload re-reads both tiers from disk. A missing file is an empty tier.
func (s *Store) Reload(ctx context.Context) error {
	l := log.FromContext(ctx)

	global, err := loadTier(s.opts.GlobalFile)
	if err != nil {
		return err
	}
	local, err := loadTier(s.opts.LocalFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.global = global
	s.local = local
	l.Debug("store reloaded", "global", s.opts.GlobalFile, "local", s.opts.LocalFile)
	return s.rebuild()
}

// Get returns the value at path, or nil if nothing is stored there.
func (s *Store) Get(ctx context.Context, path string, loc ims.Location) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var k *koanf.Koanf
	switch loc {
	case ims.LocationAny:
		k = s.merged
	case ims.LocationLocal:
		k = s.local
	case ims.LocationGlobal:
		k = s.global
	default:
		return nil, fmt.Errorf("unknown location %q", loc)
	}

	if !k.Exists(path) {
		return nil, nil
	}
	return k.Get(path), nil
}

// Set replaces the value at path in the local or global tier and writes the
// tier back to disk. A nil value removes the path.
func (s *Store) Set(ctx context.Context, path string, value any, local bool) error {
	file := s.opts.GlobalFile
	if local {
		file = s.opts.LocalFile
	}
	if file == "" {
		return fmt.Errorf("no file configured for the %s store", ims.LocationFor(local))
	}

	lock := NewFileLock(file + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", file, err)
	}
	defer lock.Unlock()

	// Start from the file, not the snapshot, so writes by other
	// processes since the last reload are kept.
	k, err := loadTier(file)
	if err != nil {
		return err
	}

	k.Delete(path)
	if value != nil {
		if err := k.Set(path, value); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}

	data, err := k.Marshal(parserFor(file))
	if err != nil {
		return fmt.Errorf("encode %s: %w", file, err)
	}
	if err := writeFileAtomic(file, data); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}

	log.FromContext(ctx).Debug("store set", "path", path, "file", file)

	s.mu.Lock()
	defer s.mu.Unlock()
	if local {
		s.local = k
	} else {
		s.global = k
	}
	return s.rebuild()
}

// Lock serializes read-modify-write sequences across goroutines and
// processes. It uses its own lock file so Set can run while it is held.
func (s *Store) Lock(ctx context.Context) (func(), error) {
	s.txMu.Lock()
	if s.opts.GlobalFile == "" {
		return s.txMu.Unlock, nil
	}

	lock := NewFileLock(s.opts.GlobalFile + ".txn.lock")
	if err := lock.Lock(); err != nil {
		s.txMu.Unlock()
		return nil, fmt.Errorf("lock store: %w", err)
	}
	log.FromContext(ctx).Debug("store locked", "file", s.opts.GlobalFile)

	return func() {
		_ = lock.Unlock()
		s.txMu.Unlock()
	}, nil
}

// rebuild recomputes the merged view. Caller must hold s.mu.
func (s *Store) rebuild() error {
	merged := koanf.New(ims.PathDelimiter)
	if err := merged.Merge(s.global); err != nil {
		return fmt.Errorf("merge global store: %w", err)
	}
	if err := merged.Merge(s.local); err != nil {
		return fmt.Errorf("merge local store: %w", err)
	}
	if s.opts.EnvPrefix != "" {
		if err := merged.Load(env.Provider(s.opts.EnvPrefix, ims.PathDelimiter, envKey(s.opts.EnvPrefix)), nil); err != nil {
			return fmt.Errorf("load environment: %w", err)
		}
	}
	s.merged = merged
	return nil
}

// loadTier reads one tier file into a fresh koanf instance.
func loadTier(file string) (*koanf.Koanf, error) {
	k := koanf.New(ims.PathDelimiter)
	if file == "" {
		return k, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return k, nil
		}
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	if err := k.Load(rawbytes.Provider(data), parserFor(file)); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return k, nil
}

// envKey maps PREFIX_IMS_CONFIG_CURRENT to ims.config.current.
// A double underscore stands for a literal underscore.
func envKey(prefix string) func(string) string {
	return func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, prefix))
		key = strings.ReplaceAll(key, "__", "\x00")
		key = strings.ReplaceAll(key, "_", ims.PathDelimiter)
		return strings.ReplaceAll(key, "\x00", "_")
	}
}
