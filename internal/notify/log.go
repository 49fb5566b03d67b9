package notify

import (
	"context"

	"github.com/chimekit/chime/pkg/logger"
)

// LogSink writes every sink call to the daemon log. It is the fallback
// when no player command is configured, and doubles as an audit trail when
// layered into a MultiSink.
type LogSink struct {
	log logger.Logger
}

func NewLogSink(l logger.Logger) *LogSink {
	return &LogSink{log: l}
}

var _ Sink = (*LogSink)(nil)

func (s *LogSink) Play(_ context.Context, sound string, volume float64) error {
	s.log.Info("play sound %q at volume %.2f", sound, volume)
	return nil
}

func (s *LogSink) Notify(_ context.Context, title, body string) error {
	s.log.Info("notify: %s: %s", title, body)
	return nil
}

func (s *LogSink) StopPlayback(context.Context) error {
	s.log.Info("stop playback")
	return nil
}

func (s *LogSink) Dismiss(_ context.Context, id string) error {
	s.log.Info("dismiss notification %s", id)
	return nil
}
