// Package storage persists imsctx data under ~/.config/imsctx/.
//
// [Store] is the two-tier (global, local) key-value store that contexts are
// kept in. Both tiers are TOML files; paths into them are dot-delimited.
// [SaveJSON] and [LoadJSON] serve small auxiliary files such as the
// context history.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ConfigDir returns the path to ~/.config/imsctx/. The directory is
// created by the first write into it.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "imsctx"), nil
}

// SaveJSON atomically writes data as JSON to the specified path.
func SaveJSON(path string, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, jsonData)
}

// LoadJSON reads JSON from the specified path into dest.
// Returns os.ErrNotExist if file doesn't exist (caller should handle).
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// writeFileAtomic ensures the parent directory exists, writes to a temp
// file, then renames it over path.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}
