package chimecli

import (
	"fmt"
	"os"
	"strconv"
)

const (
	tcpHost        = "127.0.0.1"
	tcpPortEnv     = "CHIME_TCP_PORT"
	defaultTCPPort = 4226
)

func tcpPort() int {
	if port := os.Getenv(tcpPortEnv); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p >= 1 && p <= 65535 {
			return p
		}
	}
	return defaultTCPPort
}

func tcpAddress() string {
	return fmt.Sprintf("%s:%d", tcpHost, tcpPort())
}
