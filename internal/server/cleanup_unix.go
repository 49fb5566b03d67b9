//go:build !windows

package server

import "os"

// cleanupSocket removes the unix socket file. A missing file is not an
// error.
func cleanupSocket(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
