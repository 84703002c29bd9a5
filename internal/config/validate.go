package config

import (
	"fmt"
	"path/filepath"
)

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// validate checks a loaded config and returns the first problem found.
func (c *Config) validate() error {
	if c.Store.GlobalFile == "" {
		return fmt.Errorf("store.global_file must not be empty")
	}
	if err := ValidatePath(c.Store.GlobalFile, "store.global_file"); err != nil {
		return err
	}
	if err := ValidatePath(c.HistoryFile, "history_file"); err != nil {
		return err
	}
	if c.Store.LocalFile == "" {
		return fmt.Errorf("store.local_file must not be empty")
	}
	if err := c.Keys.Validate(); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}
