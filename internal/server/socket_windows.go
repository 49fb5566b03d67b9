//go:build windows

package server

import "os"

const pipePathEnv = "CHIME_PIPE_PATH"

func pipePath() string {
	if path := os.Getenv(pipePathEnv); path != "" {
		return path
	}
	return `\\.\pipe\chime`
}
