package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chimekit/chime/common"
	"github.com/chimekit/chime/internal/notify"
	"github.com/chimekit/chime/internal/store"
	"github.com/chimekit/chime/internal/timeutil"
	"github.com/chimekit/chime/pkg/logger"
)

// TimerOptions carries the tunable defaults of the timer engine.
type TimerOptions struct {
	DefaultSound  string
	DefaultVolume float64
}

func (o *TimerOptions) applyDefaults() {
	if o.DefaultSound == "" {
		o.DefaultSound = common.DefaultSound
	}
	if o.DefaultVolume <= 0 || o.DefaultVolume > 1 {
		o.DefaultVolume = common.DefaultVolume
	}
}

// TimerScheduler owns the countdown timers. Like the alarm engine it is a
// single goroutine fed by command closures, sleeping on one timer
// programmed for the earliest expiry in a min-heap. Timers are volatile:
// they do not survive a restart, and an expired timer is surfaced exactly
// once and then dropped from the active set.
type TimerScheduler struct {
	log   logger.Logger
	store *store.TimerStore
	sink  notify.Sink
	bcast notify.Broadcaster
	clock timeutil.Clock
	opts  TimerOptions

	cmds   chan command
	done   chan struct{}
	cancel context.CancelFunc

	// h is owned by the run goroutine after Start.
	h *timerHeap
}

// NewTimerScheduler wires the engine. Call Start before any other method.
func NewTimerScheduler(l logger.Logger, st *store.TimerStore, sink notify.Sink, bcast notify.Broadcaster, clock timeutil.Clock, opts TimerOptions) *TimerScheduler {
	if l == nil {
		l = logger.NewNopLogger()
	}
	if bcast == nil {
		bcast = notify.NopBroadcaster{}
	}
	if clock == nil {
		clock = timeutil.Real()
	}
	opts.applyDefaults()
	return &TimerScheduler{
		log:   l,
		store: st,
		sink:  sink,
		bcast: bcast,
		clock: clock,
		opts:  opts,
		cmds:  make(chan command),
		done:  make(chan struct{}),
		h:     &timerHeap{},
	}
}

// Start launches the scheduling loop. There is nothing to reconcile:
// timers deliberately do not survive a restart.
func (s *TimerScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
}

// Shutdown stops the scheduling loop and waits for it to exit.
func (s *TimerScheduler) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.done
}

func (s *TimerScheduler) run(ctx context.Context) {
	defer close(s.done)

	var timer timeutil.Timer
	var timerCh <-chan time.Time

	reprogram := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerCh = nil
		}
		if s.h.Len() == 0 {
			return
		}
		d := (*s.h)[0].EndAt.Sub(s.clock.Now())
		if d > maxSleepCap {
			d = maxSleepCap
		}
		if d < 0 {
			d = 0
		}
		timer = s.clock.NewTimer(d)
		timerCh = timer.C()
	}

	reprogram()
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case c := <-s.cmds:
			err := c.fn()
			reprogram()
			c.errc <- err

		case <-timerCh:
			timer = nil
			timerCh = nil
			s.fireCheck()
			reprogram()
		}
	}
}

func (s *TimerScheduler) do(fn func() error) error {
	c := command{fn: fn, errc: make(chan error, 1)}
	select {
	case s.cmds <- c:
	case <-s.done:
		return common.Errorf(common.ErrInternal, "timer scheduler is not running")
	}
	select {
	case err := <-c.errc:
		return err
	case <-s.done:
		return common.Errorf(common.ErrInternal, "timer scheduler is not running")
	}
}

// fireCheck pops every due timer, removes it from the active set, and
// surfaces the expiry.
func (s *TimerScheduler) fireCheck() {
	now := s.clock.Now()
	for s.h.Len() > 0 && !(*s.h)[0].EndAt.After(now) {
		ev := heapPop(s.h)
		t, err := s.store.Get(ev.ID)
		if err != nil {
			// Already cancelled.
			continue
		}
		s.store.Remove(ev.ID)
		t.State = common.TimerExpired
		s.log.Info("timer %s (%q) expired after %s", t.ID, t.Name, t.Duration)
		s.expire(*t, now)
	}
}

// expire issues the expiry side effects without blocking the engine.
func (s *TimerScheduler) expire(t common.Timer, at time.Time) {
	safeGo(s.log, "broadcast "+common.NotifyTimerExpired, func() {
		s.bcast.Broadcast(common.NotifyTimerExpired, &common.TimerExpiredNotification{
			ID: t.ID, Name: t.Name, At: at,
		})
	})
	safeGo(s.log, "timer expire "+t.ID, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()
		if err := s.sink.Play(ctx, t.Sound, s.opts.DefaultVolume); err != nil {
			s.log.Warning("timer %s playback: %v", t.ID, err)
		}
		body := "Timer finished"
		if t.Name != "" {
			body = fmt.Sprintf("Timer %q finished", t.Name)
		}
		if err := s.sink.Notify(ctx, "Timer", body); err != nil {
			s.log.Warning("timer %s notification: %v", t.ID, err)
		}
	})
}

// Create starts a new countdown and returns it with Remaining set to the
// full duration.
func (s *TimerScheduler) Create(p common.SetTimerParams) (common.Timer, error) {
	if p.Duration <= 0 {
		return common.Timer{}, common.Errorf(common.ErrInvalid, "duration must be positive")
	}
	sound := p.Sound
	if sound == "" {
		sound = s.opts.DefaultSound
	}
	var out common.Timer
	err := s.do(func() error {
		now := s.clock.Now()
		t := &common.Timer{
			ID:        uuid.NewString(),
			Name:      p.Name,
			Duration:  p.Duration,
			EndAt:     now.Add(p.Duration),
			State:     common.TimerRunning,
			Sound:     sound,
			CreatedAt: now,
		}
		s.store.Add(t)
		heapPush(s.h, timerEvent{ID: t.ID, EndAt: t.EndAt})
		out = *t
		out.Remaining = p.Duration
		return nil
	})
	if err != nil {
		return common.Timer{}, err
	}
	return out, nil
}

// List returns the running timers ordered by end time, each with
// Remaining computed against the same instant and clamped to zero.
func (s *TimerScheduler) List() ([]common.Timer, error) {
	var out []common.Timer
	err := s.do(func() error {
		now := s.clock.Now()
		timers := s.store.List()
		out = make([]common.Timer, 0, len(timers))
		for _, t := range timers {
			rem := t.EndAt.Sub(now)
			if rem < 0 {
				rem = 0
			}
			t.Remaining = rem
			out = append(out, *t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel removes every matching running timer without surfacing anything.
func (s *TimerScheduler) Cancel(sel common.Selector) (common.CountResponse, error) {
	if sel.IsZero() {
		return common.CountResponse{}, common.Errorf(common.ErrInvalid, "empty selector")
	}
	var resp common.CountResponse
	err := s.do(func() error {
		for _, t := range s.store.List() {
			if t.State != common.TimerRunning || !sel.Matches(t.ID, t.Name) {
				continue
			}
			s.store.Remove(t.ID)
			heapRemoveByID(s.h, t.ID)
			resp.Count++
			resp.IDs = append(resp.IDs, t.ID)
		}
		return nil
	})
	return resp, err
}
