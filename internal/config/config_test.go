package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chimekit/chime/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(socketPathEnv, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultSound != common.DefaultSound {
		t.Errorf("DefaultSound = %q, want %q", cfg.DefaultSound, common.DefaultSound)
	}
	if cfg.DefaultVolume != common.DefaultVolume {
		t.Errorf("DefaultVolume = %v, want %v", cfg.DefaultVolume, common.DefaultVolume)
	}
	if cfg.SnoozeMinutes != common.DefaultSnoozeMinutes {
		t.Errorf("SnoozeMinutes = %d, want %d", cfg.SnoozeMinutes, common.DefaultSnoozeMinutes)
	}
	if cfg.AutoDismissMinutes != common.DefaultAutoDismissMinutes {
		t.Errorf("AutoDismissMinutes = %d, want %d", cfg.AutoDismissMinutes, common.DefaultAutoDismissMinutes)
	}
	if cfg.TCPPort != defaultTCPPort {
		t.Errorf("TCPPort = %d, want %d", cfg.TCPPort, defaultTCPPort)
	}
	if cfg.DatabasePath == "" || cfg.SoundsDir == "" {
		t.Error("expected database and sounds paths to be filled in")
	}
}

func TestLoadParsesFile(t *testing.T) {
	t.Setenv(socketPathEnv, "")

	path := writeConfig(t, `
socket_path: /run/user/1000/chime.sock
web_addr: 127.0.0.1:7768
web_secret: hunter2
database_path: /var/lib/chime/alarms.db
sounds_dir: /usr/share/chime/sounds
player_command: ["mpv", "--no-video", "--volume={volume}", "{file}"]
notify_command: ["notify-send", "{title}", "{body}"]
default_sound: bell
default_volume: 0.8
snooze_minutes: 5
auto_dismiss_minutes: 15
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SocketPath != "/run/user/1000/chime.sock" {
		t.Errorf("SocketPath = %q", cfg.SocketPath)
	}
	if cfg.WebAddr != "127.0.0.1:7768" || cfg.WebSecret != "hunter2" {
		t.Errorf("web config = %q %q", cfg.WebAddr, cfg.WebSecret)
	}
	if len(cfg.PlayerCommand) != 4 || cfg.PlayerCommand[0] != "mpv" {
		t.Errorf("PlayerCommand = %v", cfg.PlayerCommand)
	}
	if cfg.DefaultSound != "bell" || cfg.DefaultVolume != 0.8 {
		t.Errorf("sound defaults = %q %v", cfg.DefaultSound, cfg.DefaultVolume)
	}
	if cfg.SnoozeMinutes != 5 || cfg.AutoDismissMinutes != 15 {
		t.Errorf("minutes = %d %d", cfg.SnoozeMinutes, cfg.AutoDismissMinutes)
	}
}

func TestLoadEnvOverridesSocketPath(t *testing.T) {
	t.Setenv(socketPathEnv, "/tmp/override.sock")

	path := writeConfig(t, "socket_path: /tmp/from-file.sock\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SocketPath != "/tmp/override.sock" {
		t.Errorf("SocketPath = %q, want env override", cfg.SocketPath)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv(socketPathEnv, "")

	for name, content := range map[string]string{
		"volume too high":  "default_volume: 1.5\n",
		"negative snooze":  "snooze_minutes: -1\n",
		"negative dismiss": "auto_dismiss_minutes: -2\n",
		"not yaml":         "::: {nope\n",
	} {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
