package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chimekit/chime/pkg/logger"
)

type stubSink struct {
	plays   int
	stops   int
	notifys int
	dismiss int
	err     error
}

func (s *stubSink) Play(context.Context, string, float64) error { s.plays++; return s.err }
func (s *stubSink) Notify(context.Context, string, string) error {
	s.notifys++
	return s.err
}
func (s *stubSink) StopPlayback(context.Context) error    { s.stops++; return s.err }
func (s *stubSink) Dismiss(context.Context, string) error { s.dismiss++; return s.err }

func TestMultiSinkFansOut(t *testing.T) {
	a, b := &stubSink{}, &stubSink{}
	m := NewMultiSink(a, b)
	ctx := context.Background()

	if err := m.Play(ctx, "bell", 0.5); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := m.Notify(ctx, "t", "b"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := m.StopPlayback(ctx); err != nil {
		t.Fatalf("StopPlayback: %v", err)
	}
	if err := m.Dismiss(ctx, "id"); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	for _, s := range []*stubSink{a, b} {
		if s.plays != 1 || s.notifys != 1 || s.stops != 1 || s.dismiss != 1 {
			t.Errorf("sink calls = %+v", s)
		}
	}
}

func TestMultiSinkContinuesPastFailures(t *testing.T) {
	bad := &stubSink{err: errors.New("boom")}
	good := &stubSink{}
	m := NewMultiSink(bad, good)

	err := m.Play(context.Background(), "bell", 0.5)
	if err == nil {
		t.Fatal("expected the failure to propagate")
	}
	if good.plays != 1 {
		t.Error("second sink was skipped")
	}
}

func TestLogSinkRecords(t *testing.T) {
	ml := logger.NewMockLogger()
	s := NewLogSink(ml)
	ctx := context.Background()

	if err := s.Play(ctx, "bell", 0.5); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := s.Dismiss(ctx, "alarm_1"); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if len(ml.InfoCalls) != 2 || !strings.Contains(ml.InfoCalls[0], "bell") {
		t.Errorf("log calls = %v", ml.InfoCalls)
	}
}

func TestExecSinkWithoutCommandsIsQuiet(t *testing.T) {
	ml := logger.NewMockLogger()
	s := NewExecSink(ml, nil, nil, nil)
	ctx := context.Background()

	if err := s.Play(ctx, "bell", 0.5); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := s.Notify(ctx, "title", "body"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := s.StopPlayback(ctx); err != nil {
		t.Fatalf("StopPlayback: %v", err)
	}
	if len(ml.WarningCalls) != 1 {
		t.Errorf("warnings = %v", ml.WarningCalls)
	}
}

func TestExpandArgs(t *testing.T) {
	got := expandArgs(
		[]string{"mpv", "--volume={volume}", "{file}"},
		map[string]string{"{file}": "/s/bell.mp3", "{volume}": "70"},
	)
	want := []string{"mpv", "--volume=70", "/s/bell.mp3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expandArgs = %v, want %v", got, want)
		}
	}

	if containsPlaceholder([]string{"play", "-q"}, "{file}") {
		t.Error("containsPlaceholder reported a missing placeholder")
	}
	if !containsPlaceholder([]string{"play", "{file}"}, "{file}") {
		t.Error("containsPlaceholder missed a present placeholder")
	}
}
