// Package config loads and validates the louskubot TOML configuration.
//
// Configuration lives at ~/.config/louskubot/config.toml and can be
// overridden with the --config flag. A missing file is not an error: every
// setting has a default matching the original automation (upstream epithet
// repository, artifact file names, bot commit identity, fixed commit
// subjects). Invalid files fail loudly so a broken config never produces a
// half-configured sync run.
package config
