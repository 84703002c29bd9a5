package ims

import (
	"context"

	"github.com/raphi011/imsctx/internal/log"
)

// Context is a named bundle of context data.
// Data is nil when nothing is stored under Name.
type Context struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}

// Manager applies the context rules on top of a Backend.
type Manager struct {
	backend Backend
}

// NewManager creates a Manager over the given backend.
func NewManager(b Backend) *Manager {
	return &Manager{backend: b}
}

// Current returns the name of the current context, or "" if none is set.
func (m *Manager) Current(ctx context.Context) (string, error) {
	v, err := m.backend.ConfigValue(ctx, currentKey(m.backend))
	if err != nil {
		return "", err
	}
	name, _ := v.(string)
	return name, nil
}

// SetCurrent makes name the current context. The pointer is always written
// to the local tier.
func (m *Manager) SetCurrent(ctx context.Context, name string) error {
	log.FromContext(ctx).Debug("set current context", "name", name)
	return m.backend.SetConfigValue(ctx, currentKey(m.backend), name, true)
}

// Get returns the named context. An empty name resolves to the current
// context. When neither is available the result has an empty name and nil
// data; this is not an error.
func (m *Manager) Get(ctx context.Context, name string) (Context, error) {
	if name == "" {
		current, err := m.Current(ctx)
		if err != nil {
			return Context{}, err
		}
		name = current
	}
	if name == "" {
		return Context{}, nil
	}

	data, err := m.backend.ContextValue(ctx, name)
	if err != nil {
		return Context{}, err
	}
	return Context{Name: name, Data: data}, nil
}

// Set stores data for the named context, replacing what was there.
// An empty name resolves to the current context; if there is none,
// Set returns ErrMissingContextLabel.
func (m *Manager) Set(ctx context.Context, name string, data any, local bool) error {
	if name == "" {
		current, err := m.Current(ctx)
		if err != nil {
			return err
		}
		name = current
	}
	if name == "" {
		return ErrMissingContextLabel
	}

	log.FromContext(ctx).Debug("set context", "name", name, "local", local)
	return m.backend.SetContextValue(ctx, name, data, local)
}

// Keys returns the names of all stored contexts.
func (m *Manager) Keys(ctx context.Context) ([]string, error) {
	return m.backend.ContextKeys(ctx)
}

// Plugins returns the configured plugin identifiers. Backends without plugin
// support report an empty list.
func (m *Manager) Plugins(ctx context.Context) ([]string, error) {
	if pb, ok := m.backend.(PluginBackend); ok {
		return pb.Plugins(ctx)
	}
	return []string{}, nil
}

// SetPlugins replaces the plugin list. Backends without plugin support
// return ErrNotImplemented.
func (m *Manager) SetPlugins(ctx context.Context, plugins []string, local bool) error {
	if pb, ok := m.backend.(PluginBackend); ok {
		return pb.SetPlugins(ctx, plugins, local)
	}
	return ErrNotImplemented
}

// keyNamer is implemented by backends with configurable segment names.
type keyNamer interface {
	KeyNames() KeyNames
}

// currentKey returns the config key holding the current context name.
func currentKey(b Backend) string {
	if kn, ok := b.(keyNamer); ok {
		return kn.KeyNames().Current
	}
	return DefaultKeyNames().Current
}
