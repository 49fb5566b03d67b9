package notify

import (
	"context"
	"errors"
)

// MultiSink fans every call out to all children. A failing child never
// prevents the remaining children from being invoked; the errors are
// joined and returned.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

var _ Sink = (*MultiSink)(nil)

func (m *MultiSink) Play(ctx context.Context, sound string, volume float64) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Play(ctx, sound, volume); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) Notify(ctx context.Context, title, body string) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Notify(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) StopPlayback(ctx context.Context) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.StopPlayback(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) Dismiss(ctx context.Context, id string) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Dismiss(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
