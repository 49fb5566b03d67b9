package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recordSink records sink calls and signals them on channels so tests can
// wait for detached side effects.
type recordSink struct {
	mu       sync.Mutex
	plays    []string
	stops    int
	dismiss  []string
	notifies []string

	playErr error
	played  chan string
	stopped chan struct{}
}

func newRecordSink() *recordSink {
	return &recordSink{
		played:  make(chan string, 16),
		stopped: make(chan struct{}, 16),
	}
}

func (r *recordSink) Play(_ context.Context, sound string, _ float64) error {
	r.mu.Lock()
	r.plays = append(r.plays, sound)
	err := r.playErr
	r.mu.Unlock()
	r.played <- sound
	return err
}

func (r *recordSink) Notify(_ context.Context, title, body string) error {
	r.mu.Lock()
	r.notifies = append(r.notifies, title+": "+body)
	r.mu.Unlock()
	return nil
}

func (r *recordSink) StopPlayback(context.Context) error {
	r.mu.Lock()
	r.stops++
	r.mu.Unlock()
	r.stopped <- struct{}{}
	return nil
}

func (r *recordSink) Dismiss(_ context.Context, id string) error {
	r.mu.Lock()
	r.dismiss = append(r.dismiss, id)
	r.mu.Unlock()
	return nil
}

func (r *recordSink) playCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plays)
}

// panicSink panics on Play to exercise side-effect isolation.
type panicSink struct {
	*recordSink
}

func (p *panicSink) Play(ctx context.Context, sound string, volume float64) error {
	_ = p.recordSink.Play(ctx, sound, volume)
	panic("player exploded")
}

// recordBroadcaster records pushed events and signals them on a channel.
type recordBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
	ch     chan broadcastEvent
}

type broadcastEvent struct {
	method string
	params any
}

func newRecordBroadcaster() *recordBroadcaster {
	return &recordBroadcaster{ch: make(chan broadcastEvent, 16)}
}

func (r *recordBroadcaster) Broadcast(method string, params any) {
	ev := broadcastEvent{method: method, params: params}
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.ch <- ev
}

func waitPlay(t *testing.T, sink *recordSink) string {
	t.Helper()
	select {
	case sound := <-sink.played:
		return sound
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for playback")
		return ""
	}
}

func waitStop(t *testing.T, sink *recordSink) {
	t.Helper()
	select {
	case <-sink.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for playback to stop")
	}
}

func waitEvent(t *testing.T, bcast *recordBroadcaster, method string) broadcastEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-bcast.ch:
			if ev.method == method {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", method)
		}
	}
}
