package ims

import (
	"fmt"
	"strings"
)

// KeyNames supplies the path segments of the configuration namespace.
type KeyNames struct {
	IMS      string `toml:"ims" json:"ims"`           // namespace root
	Config   string `toml:"config" json:"config"`     // config sub-root
	Contexts string `toml:"contexts" json:"contexts"` // contexts sub-root
	Current  string `toml:"current" json:"current"`   // current context name, under Config
	Plugins  string `toml:"plugins" json:"plugins"`   // plugin list, under Config
	CLI      string `toml:"cli" json:"cli"`           // CLI context, under Contexts
}

// DefaultKeyNames returns the segment names used when none are configured.
func DefaultKeyNames() KeyNames {
	return KeyNames{
		IMS:      "ims",
		Config:   "config",
		Contexts: "contexts",
		Current:  "current",
		Plugins:  "plugins",
		CLI:      "cli",
	}
}

// Validate checks that every segment is set and contains no path delimiter.
// It does not check for collisions between Current and context names.
func (k KeyNames) Validate() error {
	segments := []struct {
		name, value string
	}{
		{"ims", k.IMS},
		{"config", k.Config},
		{"contexts", k.Contexts},
		{"current", k.Current},
		{"plugins", k.Plugins},
		{"cli", k.CLI},
	}
	for _, s := range segments {
		if s.value == "" {
			return fmt.Errorf("key name %q must not be empty", s.name)
		}
		if strings.Contains(s.value, PathDelimiter) {
			return fmt.Errorf("key name %q must not contain %q, got %q", s.name, PathDelimiter, s.value)
		}
	}
	return nil
}

// PathDelimiter separates segments in store paths.
const PathDelimiter = "."

// joinPath joins segments into a store path.
func joinPath(segments ...string) string {
	return strings.Join(segments, PathDelimiter)
}

// ConfigPath returns IMS.CONFIG[.key].
func (k KeyNames) ConfigPath(key string) string {
	if key == "" {
		return joinPath(k.IMS, k.Config)
	}
	return joinPath(k.IMS, k.Config, key)
}

// ContextPath returns IMS.CONTEXTS[.name].
func (k KeyNames) ContextPath(name string) string {
	if name == "" {
		return joinPath(k.IMS, k.Contexts)
	}
	return joinPath(k.IMS, k.Contexts, name)
}
