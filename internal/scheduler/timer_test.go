package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/chimekit/chime/common"
	"github.com/chimekit/chime/internal/store"
	"github.com/chimekit/chime/internal/timeutil"
	"github.com/chimekit/chime/pkg/logger"
)

type timerFixture struct {
	s     *TimerScheduler
	clock *timeutil.MockClock
	sink  *recordSink
	bcast *recordBroadcaster
}

func newTimerFixture(t *testing.T) *timerFixture {
	t.Helper()
	f := &timerFixture{
		clock: timeutil.NewMockClock(refNow),
		sink:  newRecordSink(),
		bcast: newRecordBroadcaster(),
	}
	f.s = NewTimerScheduler(logger.NewNopLogger(), store.NewTimerStore(), f.sink, f.bcast, f.clock, TimerOptions{})
	f.s.Start(context.Background())
	t.Cleanup(f.s.Shutdown)
	return f
}

func (f *timerFixture) sync(t *testing.T) {
	t.Helper()
	for i := 0; i < 2; i++ {
		if err := f.s.do(func() error { return nil }); err != nil {
			t.Fatalf("sync: %v", err)
		}
	}
}

func TestTimerCreate(t *testing.T) {
	f := newTimerFixture(t)

	tm, err := f.s.Create(common.SetTimerParams{Name: "tea", Duration: 5 * time.Minute})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tm.ID == "" || tm.State != common.TimerRunning {
		t.Errorf("timer = %+v", tm)
	}
	if !tm.EndAt.Equal(refNow.Add(5 * time.Minute)) {
		t.Errorf("end at = %v, want %v", tm.EndAt, refNow.Add(5*time.Minute))
	}
	if tm.Remaining != 5*time.Minute {
		t.Errorf("remaining = %v, want 5m", tm.Remaining)
	}
	if tm.Sound != common.DefaultSound {
		t.Errorf("sound = %q, want default", tm.Sound)
	}
}

func TestTimerCreateRejectsNonPositiveDuration(t *testing.T) {
	f := newTimerFixture(t)

	for _, d := range []time.Duration{0, -time.Second} {
		if _, err := f.s.Create(common.SetTimerParams{Duration: d}); common.CodeOf(err) != common.ErrInvalid {
			t.Errorf("duration %v: expected invalid error, got %v", d, err)
		}
	}
}

func TestTimerExpiresOnce(t *testing.T) {
	f := newTimerFixture(t)

	tm, err := f.s.Create(common.SetTimerParams{Name: "pasta", Duration: 5 * time.Minute, Sound: "beep"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	f.clock.Advance(5 * time.Minute)
	if sound := waitPlay(t, f.sink); sound != "beep" {
		t.Errorf("played %q, want beep", sound)
	}
	ev := waitEvent(t, f.bcast, common.NotifyTimerExpired)
	expired := ev.params.(*common.TimerExpiredNotification)
	if expired.ID != tm.ID || expired.Name != "pasta" {
		t.Errorf("expired event = %+v", expired)
	}

	// Surfaced exactly once: gone from the active set afterwards.
	f.sync(t)
	timers, err := f.s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(timers) != 0 {
		t.Errorf("expired timer still listed: %+v", timers)
	}

	// And it never fires again.
	f.clock.Advance(time.Hour)
	f.sync(t)
	if n := f.sink.playCount(); n != 1 {
		t.Errorf("timer fired %d times, want 1", n)
	}
}

func TestTimerListRemaining(t *testing.T) {
	f := newTimerFixture(t)

	f.s.Create(common.SetTimerParams{Name: "long", Duration: 10 * time.Minute})
	f.s.Create(common.SetTimerParams{Name: "short", Duration: 2 * time.Minute})

	f.clock.Advance(time.Minute)
	f.sync(t)

	timers, err := f.s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(timers) != 2 {
		t.Fatalf("got %d timers, want 2", len(timers))
	}
	// Ordered by end time.
	if timers[0].Name != "short" || timers[1].Name != "long" {
		t.Errorf("order = %s, %s", timers[0].Name, timers[1].Name)
	}
	if timers[0].Remaining != time.Minute {
		t.Errorf("short remaining = %v, want 1m", timers[0].Remaining)
	}
	if timers[1].Remaining != 9*time.Minute {
		t.Errorf("long remaining = %v, want 9m", timers[1].Remaining)
	}
}

func TestTimerCancel(t *testing.T) {
	f := newTimerFixture(t)

	tm, _ := f.s.Create(common.SetTimerParams{Name: "abort", Duration: 5 * time.Minute})
	f.s.Create(common.SetTimerParams{Name: "keep", Duration: 7 * time.Minute})

	resp, err := f.s.Cancel(common.Selector{Name: "abort"})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if resp.Count != 1 || resp.IDs[0] != tm.ID {
		t.Errorf("cancel response = %+v", resp)
	}

	// The cancelled timer is silent; the surviving one still fires.
	f.clock.Advance(7 * time.Minute)
	waitPlay(t, f.sink)
	f.sync(t)
	if n := f.sink.playCount(); n != 1 {
		t.Errorf("fired %d times, want 1", n)
	}

	if _, err := f.s.Cancel(common.Selector{}); common.CodeOf(err) != common.ErrInvalid {
		t.Errorf("empty selector: expected invalid error, got %v", err)
	}
}

func TestTimerCancelAll(t *testing.T) {
	f := newTimerFixture(t)

	f.s.Create(common.SetTimerParams{Duration: time.Minute})
	f.s.Create(common.SetTimerParams{Duration: 2 * time.Minute})

	resp, err := f.s.Cancel(common.Selector{All: true})
	if err != nil {
		t.Fatalf("cancel all: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("cancelled %d, want 2", resp.Count)
	}

	f.clock.Advance(time.Hour)
	f.sync(t)
	if n := f.sink.playCount(); n != 0 {
		t.Errorf("cancelled timers fired %d times", n)
	}
}
