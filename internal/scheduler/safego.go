package scheduler

import (
	"runtime/debug"

	"github.com/chimekit/chime/pkg/logger"
)

// safeGo runs fn in a goroutine with panic recovery so a faulting sink or
// broadcaster can never take down a scheduling loop.
func safeGo(l logger.Logger, context string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				l.Error("panic [%s]: %v\n%s", context, r, debug.Stack())
			}
		}()
		fn()
	}()
}
