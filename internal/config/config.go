// Package config loads the daemon configuration from a YAML file,
// filling in sensible defaults for anything left unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chimekit/chime/common"
)

// Config holds everything the daemon needs to run. All fields are
// optional in the file; zero values are replaced by defaults.
type Config struct {
	// SocketPath is where the RPC socket (or named pipe) is created.
	// The CHIME_SOCKET_PATH environment variable takes precedence.
	SocketPath string `yaml:"socket_path"`

	// TCPPort is the loopback port used when the socket cannot be bound.
	TCPPort int `yaml:"tcp_port"`

	// WebAddr is the listen address for the HTTP/websocket surface.
	// Empty disables it.
	WebAddr string `yaml:"web_addr"`

	// WebSecret, when set, requires a Bearer token on the web surface.
	WebSecret string `yaml:"web_secret"`

	// DatabasePath is the SQLite file holding persisted alarms.
	DatabasePath string `yaml:"database_path"`

	// SoundsDir holds the built-in sound files.
	SoundsDir string `yaml:"sounds_dir"`

	// PlayerCommand is the argv template used to play a sound; "{file}"
	// and "{volume}" are substituted. Empty means playback is logged only.
	PlayerCommand []string `yaml:"player_command"`

	// NotifyCommand is the argv template used to post a desktop
	// notification; "{title}" and "{body}" are substituted.
	NotifyCommand []string `yaml:"notify_command"`

	DefaultSound  string  `yaml:"default_sound"`
	DefaultVolume float64 `yaml:"default_volume"`

	// SnoozeMinutes is the snooze duration applied when a snooze request
	// carries none.
	SnoozeMinutes int `yaml:"snooze_minutes"`

	// AutoDismissMinutes bounds how long an alarm rings unattended.
	AutoDismissMinutes int `yaml:"auto_dismiss_minutes"`
}

const (
	socketPathEnv  = "CHIME_SOCKET_PATH"
	defaultTCPPort = 4226
)

// DefaultDir returns the per-user directory holding the config file,
// database and sounds.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "chime")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file is fine, run on defaults.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if env := os.Getenv(socketPathEnv); env != "" {
		c.SocketPath = env
	}
	if c.TCPPort == 0 {
		c.TCPPort = defaultTCPPort
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(DefaultDir(), "alarms.db")
	}
	if c.SoundsDir == "" {
		c.SoundsDir = filepath.Join(DefaultDir(), "sounds")
	}
	if c.DefaultSound == "" {
		c.DefaultSound = common.DefaultSound
	}
	if c.DefaultVolume == 0 {
		c.DefaultVolume = common.DefaultVolume
	}
	if c.SnoozeMinutes == 0 {
		c.SnoozeMinutes = common.DefaultSnoozeMinutes
	}
	if c.AutoDismissMinutes == 0 {
		c.AutoDismissMinutes = common.DefaultAutoDismissMinutes
	}
}

func (c *Config) validate() error {
	if c.DefaultVolume < 0 || c.DefaultVolume > 1 {
		return fmt.Errorf("default_volume %v out of range [0, 1]", c.DefaultVolume)
	}
	if c.SnoozeMinutes < 0 {
		return fmt.Errorf("snooze_minutes must not be negative")
	}
	if c.AutoDismissMinutes < 0 {
		return fmt.Errorf("auto_dismiss_minutes must not be negative")
	}
	return nil
}
