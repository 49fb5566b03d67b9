//go:build !windows

package server

import "os"

// setSocketPermissions restricts the socket to its owner. Alarms are a
// per-user affair; other users have no business ringing or stopping them.
func setSocketPermissions(path string) {
	_ = os.Chmod(path, 0700)
}
