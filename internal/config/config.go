package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so intervals can be written as "24h" or
// "10s" in the config file.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UpstreamConfig names the repository that epithets.json is mirrored from.
type UpstreamConfig struct {
	URL    string `toml:"url"`
	Branch string `toml:"branch"`
}

// IdentityConfig is the commit author identity for automated commits.
type IdentityConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// CommitConfig holds the fixed commit subjects and the push toggle.
type CommitConfig struct {
	EpithetSubject   string `toml:"epithet_subject"`
	EtymologySubject string `toml:"etymology_subject"`
	Push             bool   `toml:"push"`
}

// GeneratorConfig configures the etymology generator. An empty command
// selects the built-in generator; a non-empty command is run via `sh -c`
// as an opaque external collaborator.
type GeneratorConfig struct {
	Command string   `toml:"command"`
	Timeout Duration `toml:"timeout"`
}

// KotusConfig configures the built-in generator's Kotus client.
type KotusConfig struct {
	BaseURL           string   `toml:"base_url"`
	ArticleBaseURL    string   `toml:"article_base_url"`
	UserAgent         string   `toml:"user_agent"`
	Timeout           Duration `toml:"timeout"`
	OverwriteExisting bool     `toml:"overwrite_existing"`
}

// WatchConfig configures scheduled mode.
type WatchConfig struct {
	Interval Duration `toml:"interval"`
}

// Config holds the louskubot configuration
type Config struct {
	Repo            string          `toml:"repo"` // working copy path, "" means cwd
	EpithetsFile    string          `toml:"epithets_file"`
	EtymologiesFile string          `toml:"etymologies_file"`
	Upstream        UpstreamConfig  `toml:"upstream"`
	Identity        IdentityConfig  `toml:"identity"`
	Commit          CommitConfig    `toml:"commit"`
	Generator       GeneratorConfig `toml:"generator"`
	Kotus           KotusConfig     `toml:"kotus"`
	Watch           WatchConfig     `toml:"watch"`
}

// Default returns the default configuration, matching the original
// louskuttelua automation.
func Default() Config {
	return Config{
		EpithetsFile:    "epithets.json",
		EtymologiesFile: "etymologies.json",
		Upstream: UpstreamConfig{
			URL:    "https://github.com/corrafig/louskuttelua.git",
			Branch: "main",
		},
		Identity: IdentityConfig{
			Name:  "LouskuBot",
			Email: "louskubot@users.noreply.github.com",
		},
		Commit: CommitConfig{
			EpithetSubject:   "Automated epithet update from GitHub Action",
			EtymologySubject: "Automated etymology update from GitHub Action",
			Push:             true,
		},
		Generator: GeneratorConfig{
			Timeout: Duration(30 * time.Minute),
		},
		Kotus: KotusConfig{
			BaseURL:        "https://kaino.kotus.fi/ses/ajax.php",
			ArticleBaseURL: "https://kaino.kotus.fi/ses/?p=article&etym_id=",
			UserAgent:      "LouskuBot (https://github.com/corrafig/louskubot)",
			Timeout:        Duration(10 * time.Second),
		},
		Watch: WatchConfig{
			Interval: Duration(24 * time.Hour),
		},
	}
}

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

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// DefaultPath returns the default path to the config file
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "louskubot", "config.toml"), nil
}

// Load reads config from the given path, or from the default location when
// path is empty. Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load(path string) (Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}

	// Expand ~ in repo (shell doesn't expand in config files)
	if cfg.Repo != "" {
		expanded, err := expandPath(cfg.Repo)
		if err != nil {
			return Default(), fmt.Errorf("expand repo: %w", err)
		}
		cfg.Repo = expanded
	}

	return cfg, nil
}

// Validate checks the configuration for values that would make a sync run
// misbehave rather than fail cleanly.
func (c *Config) Validate() error {
	if err := ValidatePath(c.Repo, "repo"); err != nil {
		return err
	}
	if c.EpithetsFile == "" {
		return errors.New("epithets_file must not be empty")
	}
	if c.EtymologiesFile == "" {
		return errors.New("etymologies_file must not be empty")
	}
	if filepath.IsAbs(c.EpithetsFile) || filepath.IsAbs(c.EtymologiesFile) {
		return errors.New("artifact file names must be relative to the repository root")
	}
	if c.Upstream.URL == "" {
		return errors.New("upstream.url must not be empty")
	}
	if c.Upstream.Branch == "" {
		return errors.New("upstream.branch must not be empty")
	}
	if c.Identity.Name == "" || c.Identity.Email == "" {
		return errors.New("identity.name and identity.email must not be empty")
	}
	if c.Commit.EpithetSubject == "" || c.Commit.EtymologySubject == "" {
		return errors.New("commit subjects must not be empty")
	}
	if c.Generator.Timeout.Std() <= 0 {
		return errors.New("generator.timeout must be positive")
	}
	if c.Kotus.Timeout.Std() <= 0 {
		return errors.New("kotus.timeout must be positive")
	}
	if _, err := url.Parse(c.Kotus.BaseURL); err != nil || c.Kotus.BaseURL == "" {
		return fmt.Errorf("invalid kotus.base_url %q", c.Kotus.BaseURL)
	}
	if c.Watch.Interval.Std() <= 0 {
		return errors.New("watch.interval must be positive")
	}
	return nil
}

// RepoPath returns the configured working copy path, or fallback when none
// is configured.
func (c *Config) RepoPath(fallback string) string {
	if c.Repo != "" {
		return c.Repo
	}
	return fallback
}

const defaultConfig = `# louskubot configuration

# Working copy of the data repository that commits are made in.
# Must be an absolute path or start with ~ (no relative paths).
# When unset, louskubot operates on the current directory.
# repo = "~/Git/louskuttelua-data"

# Artifact file names, relative to the repository root.
epithets_file = "epithets.json"
etymologies_file = "etymologies.json"

# Upstream repository that epithets.json is mirrored from.
# The file is taken wholesale from the tip of the named branch;
# local edits to it are overwritten on every run.
[upstream]
url = "https://github.com/corrafig/louskuttelua.git"
branch = "main"

# Author identity for automated commits. Applied per-commit with
# "git -c", so the repository's own git config is left untouched.
[identity]
name = "LouskuBot"
email = "louskubot@users.noreply.github.com"

# Commit subjects are fixed strings so downstream tooling can
# distinguish epithet from etymology updates. A structured body
# (source, timestamp, diffstat) is appended automatically.
[commit]
epithet_subject = "Automated epithet update from GitHub Action"
etymology_subject = "Automated etymology update from GitHub Action"
push = true

# Etymology generator. With an empty command the built-in generator
# queries Kotus directly. A non-empty command is run via "sh -c" in a
# staging copy of the repository and must leave an updated
# etymologies.json behind; its output is validated before being
# promoted over the committed version.
[generator]
command = ""
timeout = "30m"

# Kotus (Institute for the Languages of Finland) API settings for the
# built-in generator.
[kotus]
base_url = "https://kaino.kotus.fi/ses/ajax.php"
article_base_url = "https://kaino.kotus.fi/ses/?p=article&etym_id="
user_agent = "LouskuBot (https://github.com/corrafig/louskubot)"
timeout = "10s"
# Re-fetch etymologies that are already present instead of only
# filling in missing ones.
overwrite_existing = false

# Scheduled mode: "louskubot watch" runs the full pipeline at this
# interval until interrupted.
[watch]
interval = "24h"
`

// Init creates a default config file at the default location.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := DefaultPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
