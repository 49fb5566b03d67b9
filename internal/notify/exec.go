package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/chimekit/chime/internal/sounds"
	"github.com/chimekit/chime/pkg/logger"
)

// ExecSink drives an external media player and notifier as subprocesses.
// The player command is an argv template; "{file}" and "{volume}" are
// substituted before starting it ({volume} as an integer percentage).
// Playback runs detached and at most one player process is kept; a new
// Play stops the previous one first.
type ExecSink struct {
	log       logger.Logger
	catalog   *sounds.Catalog
	playCmd   []string
	notifyCmd []string

	mu      sync.Mutex
	playing *exec.Cmd
}

// NewExecSink builds a sink around the given command templates. Either
// template may be empty, in which case the corresponding calls are
// logged and skipped.
func NewExecSink(l logger.Logger, catalog *sounds.Catalog, playCmd, notifyCmd []string) *ExecSink {
	return &ExecSink{
		log:       l,
		catalog:   catalog,
		playCmd:   playCmd,
		notifyCmd: notifyCmd,
	}
}

var _ Sink = (*ExecSink)(nil)

func (s *ExecSink) Play(ctx context.Context, sound string, volume float64) error {
	if len(s.playCmd) == 0 {
		s.log.Warning("no player command configured, skipping playback of %q", sound)
		return nil
	}
	file, err := s.catalog.Resolve(sound)
	if err != nil {
		return fmt.Errorf("resolve sound %q: %w", sound, err)
	}

	argv := expandArgs(s.playCmd, map[string]string{
		"{file}":   file,
		"{volume}": strconv.Itoa(int(volume * 100)),
	})
	if !containsPlaceholder(s.playCmd, "{file}") {
		argv = append(argv, file)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player %s: %w", argv[0], err)
	}
	s.playing = cmd
	go func() {
		// Reap the process; playback ending on its own is not an error.
		_ = cmd.Wait()
	}()
	return nil
}

func (s *ExecSink) Notify(ctx context.Context, title, body string) error {
	if len(s.notifyCmd) == 0 {
		s.log.Info("notify: %s: %s", title, body)
		return nil
	}
	argv := expandArgs(s.notifyCmd, map[string]string{
		"{title}": title,
		"{body}":  body,
	})
	if !containsPlaceholder(s.notifyCmd, "{title}") {
		argv = append(argv, title, body)
	}
	if err := exec.CommandContext(ctx, argv[0], argv[1:]...).Run(); err != nil {
		return fmt.Errorf("run notifier %s: %w", argv[0], err)
	}
	return nil
}

func (s *ExecSink) StopPlayback(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	return nil
}

// Dismiss is a no-op: subprocess notifiers have no withdrawal mechanism.
func (s *ExecSink) Dismiss(context.Context, string) error { return nil }

func (s *ExecSink) stopLocked() {
	if s.playing == nil || s.playing.Process == nil {
		return
	}
	if err := s.playing.Process.Kill(); err != nil {
		s.log.Warning("could not stop player: %v", err)
	}
	s.playing = nil
}

func expandArgs(argv []string, repl map[string]string) []string {
	out := make([]string, len(argv))
	for i, arg := range argv {
		for k, v := range repl {
			arg = strings.ReplaceAll(arg, k, v)
		}
		out[i] = arg
	}
	return out
}

func containsPlaceholder(argv []string, placeholder string) bool {
	for _, arg := range argv {
		if strings.Contains(arg, placeholder) {
			return true
		}
	}
	return false
}
