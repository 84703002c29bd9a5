// Package config handles loading and validation of imsctx settings.
//
// Settings are read from ~/.config/imsctx/config.toml (or the file named by
// IMSCTX_CONFIG) with environment variable overrides for the store files.
//
// # Configuration Sources (highest priority first)
//
//   - IMSCTX_GLOBAL_FILE env var: global store file
//   - IMSCTX_LOCAL_FILE env var: local store file
//   - Config file settings
//   - Default values
//
// # Store Settings
//
//	[store]
//	global_file = "~/.config/imsctx/store.toml"
//	local_file = ".imsctx.toml"      # relative paths resolve against the working directory
//	env_prefix = "IMSCTX_STORE_"     # "" disables the environment overlay
//
// # Key Names
//
// The [keys] section renames the segments of the store namespace. Changing
// them makes existing data invisible; they exist for compatibility with
// stores written by other tools.
//
//	[keys]
//	ims = "ims"
//	config = "config"
//	contexts = "contexts"
//	current = "current"
//	plugins = "plugins"
//	cli = "cli"
//
// # Path Validation
//
// global_file and history_file must be absolute or start with ~.
package config
