package ims

import "context"

// Location selects a storage tier for reads.
type Location string

const (
	// LocationAny reads the merged view of all tiers.
	LocationAny Location = ""
	// LocationLocal reads the local tier only.
	LocationLocal Location = "local"
	// LocationGlobal reads the global tier only.
	LocationGlobal Location = "global"
)

// LocationFor maps a write target to the tier it lands in.
func LocationFor(local bool) Location {
	if local {
		return LocationLocal
	}
	return LocationGlobal
}

// Store is the persistent key-value store contexts are kept in.
// Paths are dot-delimited. Set replaces whatever is stored at path.
type Store interface {
	Get(ctx context.Context, path string, loc Location) (any, error)
	Set(ctx context.Context, path string, value any, local bool) error
	Reload(ctx context.Context) error
}

// Locker is implemented by stores that can serialize read-modify-write
// sequences. The returned function releases the lock.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// Backend provides the storage primitives a Manager is built on.
type Backend interface {
	ConfigValue(ctx context.Context, key string) (any, error)
	SetConfigValue(ctx context.Context, key string, value any, local bool) error
	ContextValue(ctx context.Context, name string) (any, error)
	SetContextValue(ctx context.Context, name string, value any, local bool) error
	ContextKeys(ctx context.Context) ([]string, error)
}

// PluginBackend is implemented by backends that store a plugin list.
type PluginBackend interface {
	Plugins(ctx context.Context) ([]string, error)
	SetPlugins(ctx context.Context, plugins []string, local bool) error
}

// UnimplementedBackend returns ErrNotImplemented from every primitive.
// Embed it to build a partial backend.
type UnimplementedBackend struct{}

func (UnimplementedBackend) ConfigValue(context.Context, string) (any, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedBackend) SetConfigValue(context.Context, string, any, bool) error {
	return ErrNotImplemented
}

func (UnimplementedBackend) ContextValue(context.Context, string) (any, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedBackend) SetContextValue(context.Context, string, any, bool) error {
	return ErrNotImplemented
}

func (UnimplementedBackend) ContextKeys(context.Context) ([]string, error) {
	return nil, ErrNotImplemented
}
