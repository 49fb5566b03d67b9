// Package notify defines the notification sink the schedulers drive at
// fire time, plus the concrete sinks the daemon assembles: an external
// player invoked as a subprocess, a log-only fallback, and a fan-out.
// Sinks are fallible and potentially slow; callers must treat every call
// as best-effort and never block a scheduling loop on one.
package notify

import "context"

// Sink receives playback and notification side effects. Implementations
// must be safe for concurrent use and safe to call repeatedly.
type Sink interface {
	// Play starts playback of the named sound at the given volume (0..1).
	Play(ctx context.Context, sound string, volume float64) error

	// Notify delivers a human-visible notification.
	Notify(ctx context.Context, title, body string) error

	// StopPlayback stops any playback previously started by Play.
	StopPlayback(ctx context.Context) error

	// Dismiss withdraws the notification published under the given id.
	Dismiss(ctx context.Context, id string) error
}

// Broadcaster pushes scheduler events to connected clients. The daemon
// wires it to the websocket JSON-RPC notifier; tests use Nop or a recorder.
type Broadcaster interface {
	Broadcast(method string, params any)
}

// NopBroadcaster drops all events.
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(string, any) {}
