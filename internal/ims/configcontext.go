package ims

import (
	"context"
	"maps"
	"slices"

	"github.com/raphi011/imsctx/internal/log"
)

// ConfigContext is the Backend over a Store. It embeds a Manager bound to
// itself, so the full context API is available on a ConfigContext.
type ConfigContext struct {
	*Manager

	store Store
	keys  KeyNames
}

// NewConfigContext reloads the store and returns a ConfigContext using keys
// for path composition. No other store call happens before the reload.
func NewConfigContext(ctx context.Context, store Store, keys KeyNames) (*ConfigContext, error) {
	if err := store.Reload(ctx); err != nil {
		return nil, err
	}

	c := &ConfigContext{store: store, keys: keys}
	c.Manager = NewManager(c)
	return c, nil
}

// KeyNames returns the segment names the context was created with.
func (c *ConfigContext) KeyNames() KeyNames {
	return c.keys
}

// Store returns the underlying store.
func (c *ConfigContext) Store() Store {
	return c.store
}

// ConfigValue reads IMS.CONFIG.key.
func (c *ConfigContext) ConfigValue(ctx context.Context, key string) (any, error) {
	return c.store.Get(ctx, c.keys.ConfigPath(key), LocationAny)
}

// SetConfigValue writes IMS.CONFIG.key.
func (c *ConfigContext) SetConfigValue(ctx context.Context, key string, value any, local bool) error {
	return c.store.Set(ctx, c.keys.ConfigPath(key), value, local)
}

// ContextValue reads IMS.CONTEXTS.name.
func (c *ConfigContext) ContextValue(ctx context.Context, name string) (any, error) {
	return c.store.Get(ctx, c.keys.ContextPath(name), LocationAny)
}

// SetContextValue writes IMS.CONTEXTS.name. The value replaces existing data;
// only SetCLI merges.
func (c *ConfigContext) SetContextValue(ctx context.Context, name string, value any, local bool) error {
	return c.store.Set(ctx, c.keys.ContextPath(name), value, local)
}

// ContextKeys returns the names stored under IMS.CONTEXTS in sorted order.
func (c *ConfigContext) ContextKeys(ctx context.Context) ([]string, error) {
	return c.ContextKeysIn(ctx, LocationAny)
}

// ContextKeysIn is ContextKeys restricted to one tier.
func (c *ConfigContext) ContextKeysIn(ctx context.Context, loc Location) ([]string, error) {
	v, err := c.store.Get(ctx, c.keys.ContextPath(""), loc)
	if err != nil {
		return nil, err
	}
	contexts, ok := asMapping(v)
	if !ok {
		return []string{}, nil
	}
	return slices.Sorted(maps.Keys(contexts)), nil
}

// Plugins returns the list at IMS.CONFIG.PLUGINS, or nil if none is stored.
func (c *ConfigContext) Plugins(ctx context.Context) ([]string, error) {
	v, err := c.ConfigValue(ctx, c.keys.Plugins)
	if err != nil {
		return nil, err
	}
	return ParsePlugins(v)
}

// SetPlugins replaces the plugin list. A nil slice leaves the stored list
// untouched; an empty slice is stored as an explicit empty list.
func (c *ConfigContext) SetPlugins(ctx context.Context, plugins []string, local bool) error {
	if plugins == nil {
		return nil
	}
	return c.SetConfigValue(ctx, c.keys.Plugins, plugins, local)
}

// CLI returns the data of the CLI context.
func (c *ConfigContext) CLI(ctx context.Context) (any, error) {
	return c.store.Get(ctx, c.cliPath(), LocationAny)
}

// SetCLI writes the CLI context. data must be a map[string]any.
//
// With merge, the current value is read from the tier being written and
// data is laid over it with MergeShallow. Without merge, data is written
// as is and nothing is read.
func (c *ConfigContext) SetCLI(ctx context.Context, data any, local, merge bool) error {
	patch, ok := data.(map[string]any)
	if !ok {
		return ErrInvalidContextData
	}

	path := c.cliPath()
	value := patch

	if merge {
		if l, ok := c.store.(Locker); ok {
			unlock, err := l.Lock(ctx)
			if err != nil {
				return err
			}
			defer unlock()
		}

		existing, err := c.store.Get(ctx, path, LocationFor(local))
		if err != nil {
			return err
		}
		if m, ok := asMapping(existing); ok {
			value = MergeShallow(m, patch)
		}
	}

	log.FromContext(ctx).Debug("set cli context", "path", path, "local", local, "merge", merge)
	return c.store.Set(ctx, path, value, local)
}

func (c *ConfigContext) cliPath() string {
	return c.keys.ContextPath(c.keys.CLI)
}

// ParsePlugins converts a stored plugin list. nil stays nil; anything that
// is not a list of strings returns ErrInvalidPlugins.
func ParsePlugins(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return slices.Clone(list), nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, ErrInvalidPlugins
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, ErrInvalidPlugins
	}
}
