// Package config resolves packwix settings from defaults, the user config
// file at ~/.packwix/config.yaml, PACKWIX_* environment variables and command
// line flags, and edits that config file for `packwix config set`.
package config
