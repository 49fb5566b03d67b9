//go:build !windows

package chimecli

import (
	"os"
	"path/filepath"
)

const socketPathEnv = "CHIME_SOCKET_PATH"

func socketPath() string {
	if path := os.Getenv(socketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "chime.sock")
}
