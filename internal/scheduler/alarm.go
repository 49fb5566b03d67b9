package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/chimekit/chime/common"
	"github.com/chimekit/chime/internal/notify"
	"github.com/chimekit/chime/internal/store"
	"github.com/chimekit/chime/internal/timeutil"
	"github.com/chimekit/chime/pkg/logger"
)

const (
	// maxSleepCap bounds a single timer sleep so wall-clock jumps (NTP
	// steps, DST, system sleep) are noticed within a minute.
	maxSleepCap = 60 * time.Second

	// sinkTimeout bounds every detached sink call.
	sinkTimeout = 10 * time.Second
)

// AlarmOptions carries the tunable defaults of the alarm engine.
type AlarmOptions struct {
	SnoozeFor        time.Duration
	AutoDismissAfter time.Duration
	DefaultSound     string
	DefaultVolume    float64
}

func (o *AlarmOptions) applyDefaults() {
	if o.SnoozeFor <= 0 {
		o.SnoozeFor = common.DefaultSnoozeMinutes * time.Minute
	}
	if o.AutoDismissAfter <= 0 {
		o.AutoDismissAfter = common.DefaultAutoDismissMinutes * time.Minute
	}
	if o.DefaultSound == "" {
		o.DefaultSound = common.DefaultSound
	}
	if o.DefaultVolume <= 0 || o.DefaultVolume > 1 {
		o.DefaultVolume = common.DefaultVolume
	}
}

// AlarmScheduler owns every alarm and its ringing lifecycle. All state is
// confined to a single goroutine; public methods submit closures to it and
// wait for the result, so callers observe a strictly serialized engine.
type AlarmScheduler struct {
	log   logger.Logger
	store store.AlarmStore
	sink  notify.Sink
	bcast notify.Broadcaster
	clock timeutil.Clock
	opts  AlarmOptions

	cmds   chan command
	done   chan struct{}
	cancel context.CancelFunc

	// entries is owned by the run goroutine after Start.
	entries map[string]*alarmEntry
}

// command is a state mutation submitted to an engine goroutine. The reply
// is sent only after the loop has re-armed its wake-up timer, so a caller
// returning from a method observes a fully reprogrammed engine.
type command struct {
	fn   func() error
	errc chan error
}

// NewAlarmScheduler wires the engine. Call Start before any other method.
func NewAlarmScheduler(l logger.Logger, st store.AlarmStore, sink notify.Sink, bcast notify.Broadcaster, clock timeutil.Clock, opts AlarmOptions) *AlarmScheduler {
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
	return &AlarmScheduler{
		log:     l,
		store:   st,
		sink:    sink,
		bcast:   bcast,
		clock:   clock,
		opts:    opts,
		cmds:    make(chan command),
		done:    make(chan struct{}),
		entries: make(map[string]*alarmEntry),
	}
}

// Start loads the persisted alarms, reconciles them against the current
// instant, and launches the scheduling loop. It must be called exactly
// once.
func (s *AlarmScheduler) Start(ctx context.Context) error {
	alarms, err := s.store.List()
	if err != nil {
		return fmt.Errorf("load alarms: %w", err)
	}
	now := s.clock.Now()
	for _, a := range alarms {
		s.reconcile(a, now)
		s.entries[a.ID] = &alarmEntry{alarm: a}
	}
	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
	return nil
}

// Shutdown stops the scheduling loop and waits for it to exit. Detached
// sink calls already in flight are abandoned.
func (s *AlarmScheduler) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.done
}

// reconcile normalizes a stored alarm at startup. Ringing and snoozed
// states do not survive a restart, and occurrences missed while the
// daemon was down are skipped, never fired late.
func (s *AlarmScheduler) reconcile(a *common.Alarm, now time.Time) {
	switch {
	case !a.Enabled:
		if a.State == common.AlarmDisabled && a.NextFireAt.IsZero() && a.SnoozeUntil.IsZero() {
			return
		}
		a.State = common.AlarmDisabled
		a.NextFireAt = time.Time{}
		a.SnoozeUntil = time.Time{}

	case a.State == common.AlarmScheduled && a.NextFireAt.After(now):
		return

	default:
		if !a.NextFireAt.IsZero() && !a.NextFireAt.After(now) {
			s.log.Info("alarm %s (%q) missed its %s occurrence while the daemon was down, rescheduling",
				a.ID, a.Name, a.NextFireAt.Format(time.RFC3339))
		}
		next, err := NextOccurrence(a, now)
		if err != nil {
			s.log.Error("cannot reschedule alarm %s (%q): %v", a.ID, a.Name, err)
			a.Enabled = false
			a.State = common.AlarmDisabled
			a.NextFireAt = time.Time{}
			a.SnoozeUntil = time.Time{}
			break
		}
		a.State = common.AlarmScheduled
		a.NextFireAt = next
		a.SnoozeUntil = time.Time{}
	}
	if err := s.store.Update(a); err != nil {
		s.log.Error("persist reconciled alarm %s: %v", a.ID, err)
	}
}

// run is the core engine goroutine. It applies submitted commands in
// arrival order and sleeps on a single timer programmed for the earliest
// pending deadline, capped at maxSleepCap.
func (s *AlarmScheduler) run(ctx context.Context) {
	defer close(s.done)

	var timer timeutil.Timer
	var timerCh <-chan time.Time

	reprogram := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerCh = nil
		}
		next, ok := s.nextDeadline()
		if !ok {
			// Nothing pending — block on commands alone.
			return
		}
		d := next.Sub(s.clock.Now())
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

// do submits fn to the engine goroutine and waits for it to run.
func (s *AlarmScheduler) do(fn func() error) error {
	c := command{fn: fn, errc: make(chan error, 1)}
	select {
	case s.cmds <- c:
	case <-s.done:
		return common.Errorf(common.ErrInternal, "alarm scheduler is not running")
	}
	select {
	case err := <-c.errc:
		return err
	case <-s.done:
		return common.Errorf(common.ErrInternal, "alarm scheduler is not running")
	}
}

func (s *AlarmScheduler) nextDeadline() (time.Time, bool) {
	var min time.Time
	for _, e := range s.entries {
		d := e.deadline()
		if d.IsZero() {
			continue
		}
		if min.IsZero() || d.Before(min) {
			min = d
		}
	}
	return min, !min.IsZero()
}

// fireCheck visits every entry and fires those whose deadline has
// arrived. Each entry is checked in isolation so one faulting alarm
// cannot starve the rest.
func (s *AlarmScheduler) fireCheck() {
	now := s.clock.Now()
	for _, e := range s.entries {
		s.checkEntry(e, now)
	}
}

func (s *AlarmScheduler) checkEntry(e *alarmEntry, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("fire-check panic for alarm %s: %v\n%s", e.alarm.ID, r, debug.Stack())
		}
	}()
	d := e.deadline()
	if d.IsZero() || d.After(now) {
		return
	}
	switch e.alarm.State {
	case common.AlarmScheduled:
		s.startRinging(e, e.alarm.NextFireAt, now)
	case common.AlarmSnoozed:
		s.startRinging(e, e.alarm.SnoozeUntil, now)
	case common.AlarmRinging:
		s.autoDismiss(e, now)
	}
}

// startRinging transitions an alarm into the ringing state. scheduledFor
// is the instant that was due: the stored next_fire_at for a scheduled
// alarm, or snooze_until for a snoozed one.
func (s *AlarmScheduler) startRinging(e *alarmEntry, scheduledFor, now time.Time) {
	a := e.alarm
	if a.State == common.AlarmScheduled && a.Repeats() {
		// Anchor the following occurrence to the instant that fired so a
		// long ring or snooze cannot drift the schedule.
		next, err := NextOccurrence(a, scheduledFor)
		if err != nil {
			s.log.Error("next occurrence for alarm %s: %v", a.ID, err)
			e.pendingNext = time.Time{}
		} else {
			e.pendingNext = next
		}
	}
	e.ringStartedAt = now
	e.autoDismissAt = now.Add(s.opts.AutoDismissAfter)
	a.State = common.AlarmRinging
	a.SnoozeUntil = time.Time{}
	if err := s.store.Update(a); err != nil {
		// Ring anyway; durability catches up on the next transition.
		s.log.Error("persist ringing alarm %s: %v", a.ID, err)
	}
	s.log.Info("alarm %s (%q) ringing, due at %s", a.ID, a.Name, scheduledFor.Format(time.RFC3339))
	s.ring(*a, scheduledFor)
}

// ring issues the ringing side effects without blocking the engine.
func (s *AlarmScheduler) ring(a common.Alarm, at time.Time) {
	s.broadcast(common.NotifyAlarmRinging, &common.AlarmRingingNotification{
		ID: a.ID, Name: a.Name, Sound: a.Sound, At: at,
	})
	safeGo(s.log, "alarm ring "+a.ID, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()
		if err := s.sink.Play(ctx, a.Sound, a.Volume); err != nil {
			s.log.Warning("alarm %s playback: %v", a.ID, err)
		}
		body := "Alarm is ringing"
		if a.Name != "" {
			body = fmt.Sprintf("Alarm %q is ringing", a.Name)
		}
		if err := s.sink.Notify(ctx, "Alarm", body); err != nil {
			s.log.Warning("alarm %s notification: %v", a.ID, err)
		}
	})
}

func (s *AlarmScheduler) broadcast(method string, params any) {
	safeGo(s.log, "broadcast "+method, func() {
		s.bcast.Broadcast(method, params)
	})
}

// silence stops playback and withdraws the notification, best-effort.
func (s *AlarmScheduler) silence(id string) {
	safeGo(s.log, "silence "+id, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()
		if err := s.sink.StopPlayback(ctx); err != nil {
			s.log.Warning("stop playback: %v", err)
		}
		if err := s.sink.Dismiss(ctx, "alarm_"+id); err != nil {
			s.log.Warning("dismiss notification: %v", err)
		}
	})
}

// settle moves a ringing or snoozed alarm out of its active state:
// repeating alarms return to scheduled, one-time alarms become disabled.
// The transition is persisted before it is committed to memory.
func (s *AlarmScheduler) settle(e *alarmEntry, now time.Time, reason string) error {
	a := *e.alarm
	if a.Repeats() {
		next := e.pendingNext
		if next.IsZero() || !next.After(now) {
			var err error
			next, err = NextOccurrence(&a, now)
			if err != nil {
				return err
			}
		}
		a.State = common.AlarmScheduled
		a.NextFireAt = next
	} else {
		a.Enabled = false
		a.State = common.AlarmDisabled
		a.NextFireAt = time.Time{}
	}
	a.SnoozeUntil = time.Time{}
	if err := s.store.Update(&a); err != nil {
		return common.Errorf(common.ErrInternal, "persist alarm %s: %v", a.ID, err)
	}
	*e.alarm = a
	e.ringStartedAt = time.Time{}
	e.pendingNext = time.Time{}
	e.autoDismissAt = time.Time{}
	s.silence(a.ID)
	s.broadcast(common.NotifyAlarmDismissed, &common.AlarmDismissedNotification{
		ID: a.ID, Name: a.Name, Reason: reason,
	})
	return nil
}

func (s *AlarmScheduler) autoDismiss(e *alarmEntry, now time.Time) {
	s.log.Info("alarm %s (%q) rang unattended for %s, dismissing",
		e.alarm.ID, e.alarm.Name, s.opts.AutoDismissAfter)
	if err := s.settle(e, now, "auto"); err != nil {
		s.log.Error("auto-dismiss alarm %s: %v", e.alarm.ID, err)
		// Back off instead of retrying on every wakeup.
		e.autoDismissAt = now.Add(s.opts.AutoDismissAfter)
	}
}

// Create validates the parameters, computes the first occurrence, and
// persists the new alarm. Nothing is scheduled if persistence fails.
func (s *AlarmScheduler) Create(p common.SetAlarmParams) (common.Alarm, error) {
	a, err := s.buildAlarm(p)
	if err != nil {
		return common.Alarm{}, err
	}
	var out common.Alarm
	err = s.do(func() error {
		now := s.clock.Now()
		a.CreatedAt = now
		next, err := NextOccurrence(a, now)
		if err != nil {
			return err
		}
		a.NextFireAt = next
		if err := s.store.Create(a); err != nil {
			return common.Errorf(common.ErrInternal, "persist alarm: %v", err)
		}
		s.entries[a.ID] = &alarmEntry{alarm: a}
		out = *a
		return nil
	})
	if err != nil {
		return common.Alarm{}, err
	}
	return out, nil
}

func (s *AlarmScheduler) buildAlarm(p common.SetAlarmParams) (*common.Alarm, error) {
	a := &common.Alarm{
		ID:      uuid.NewString(),
		Name:    p.Name,
		Sound:   p.Sound,
		Volume:  s.opts.DefaultVolume,
		Enabled: true,
		State:   common.AlarmScheduled,
	}
	if a.Sound == "" {
		a.Sound = s.opts.DefaultSound
	}
	if p.Volume != nil {
		if *p.Volume < 0 || *p.Volume > 1 {
			return nil, common.Errorf(common.ErrInvalid, "volume %v is outside 0..1", *p.Volume)
		}
		a.Volume = *p.Volume
	}
	if p.CronExpr != "" {
		if p.TimeOfDay != "" || len(p.RepeatDays) > 0 {
			return nil, common.Errorf(common.ErrInvalid, "cron_expr cannot be combined with time or repeat_days")
		}
		if err := ValidateCron(p.CronExpr); err != nil {
			return nil, err
		}
		a.CronExpr = p.CronExpr
		return a, nil
	}
	if _, _, err := ParseTimeOfDay(p.TimeOfDay); err != nil {
		return nil, err
	}
	a.TimeOfDay = p.TimeOfDay
	days, err := NormalizeRepeatDays(p.RepeatDays)
	if err != nil {
		return nil, err
	}
	a.RepeatDays = days
	return a, nil
}

// List returns a snapshot of every alarm, ordered by next occurrence with
// idle alarms last.
func (s *AlarmScheduler) List() ([]common.Alarm, error) {
	var snapshot []*common.Alarm
	err := s.do(func() error {
		snapshot = make([]*common.Alarm, 0, len(s.entries))
		for _, e := range s.entries {
			c := *e.alarm
			snapshot = append(snapshot, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	store.SortAlarms(snapshot)
	out := make([]common.Alarm, len(snapshot))
	for i, a := range snapshot {
		out[i] = *a
	}
	return out, nil
}

// Stop dismisses every matching ringing or snoozed alarm. Alarms in other
// states are left untouched; matching none is not an error.
func (s *AlarmScheduler) Stop(sel common.Selector) (common.CountResponse, error) {
	if sel.IsZero() {
		return common.CountResponse{}, common.Errorf(common.ErrInvalid, "empty selector")
	}
	var resp common.CountResponse
	err := s.do(func() error {
		now := s.clock.Now()
		var firstErr error
		for _, e := range s.sortedEntries() {
			a := e.alarm
			if a.State != common.AlarmRinging && a.State != common.AlarmSnoozed {
				continue
			}
			if !sel.Matches(a.ID, a.Name) {
				continue
			}
			if err := s.settle(e, now, "stopped"); err != nil {
				s.log.Error("stop alarm %s: %v", a.ID, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			resp.Count++
			resp.IDs = append(resp.IDs, a.ID)
		}
		return firstErr
	})
	return resp, err
}

// Snooze silences every matching ringing or snoozed alarm until
// ringStartedAt plus the snooze duration. Re-snoozing is idempotent: the
// resulting snooze_until does not move.
func (s *AlarmScheduler) Snooze(sel common.Selector, minutes int) (common.CountResponse, error) {
	if sel.IsZero() {
		return common.CountResponse{}, common.Errorf(common.ErrInvalid, "empty selector")
	}
	if minutes < 0 {
		return common.CountResponse{}, common.Errorf(common.ErrInvalid, "snooze minutes must not be negative")
	}
	d := s.opts.SnoozeFor
	if minutes > 0 {
		d = time.Duration(minutes) * time.Minute
	}
	var resp common.CountResponse
	err := s.do(func() error {
		var firstErr error
		for _, e := range s.sortedEntries() {
			a := *e.alarm
			if a.State != common.AlarmRinging && a.State != common.AlarmSnoozed {
				continue
			}
			if !sel.Matches(a.ID, a.Name) {
				continue
			}
			a.State = common.AlarmSnoozed
			a.SnoozeUntil = e.ringStartedAt.Add(d)
			if err := s.store.Update(&a); err != nil {
				s.log.Error("persist snoozed alarm %s: %v", a.ID, err)
				if firstErr == nil {
					firstErr = common.Errorf(common.ErrInternal, "persist alarm %s: %v", a.ID, err)
				}
				continue
			}
			*e.alarm = a
			s.silence(a.ID)
			s.broadcast(common.NotifyAlarmSnoozed, &common.AlarmSnoozedNotification{
				ID: a.ID, Name: a.Name, Until: a.SnoozeUntil,
			})
			resp.Count++
			resp.IDs = append(resp.IDs, a.ID)
		}
		return firstErr
	})
	return resp, err
}

// Delete removes every matching alarm in any state. A ringing alarm is
// silenced on the way out.
func (s *AlarmScheduler) Delete(sel common.Selector) (common.CountResponse, error) {
	if sel.IsZero() {
		return common.CountResponse{}, common.Errorf(common.ErrInvalid, "empty selector")
	}
	var resp common.CountResponse
	err := s.do(func() error {
		removed, err := s.store.DeleteMatching(func(a *common.Alarm) bool {
			return sel.Matches(a.ID, a.Name)
		})
		if err != nil {
			return common.Errorf(common.ErrInternal, "delete alarms: %v", err)
		}
		for _, a := range removed {
			if e, ok := s.entries[a.ID]; ok {
				if e.alarm.State == common.AlarmRinging {
					s.silence(a.ID)
				}
				delete(s.entries, a.ID)
			}
			resp.Count++
			resp.IDs = append(resp.IDs, a.ID)
		}
		return nil
	})
	return resp, err
}

// Toggle enables or disables every matching alarm. Enabling recomputes
// the next occurrence from now; disabling a ringing or snoozed alarm
// silences it. Alarms already in the requested state are not counted.
func (s *AlarmScheduler) Toggle(sel common.Selector, enabled bool) (common.CountResponse, error) {
	if sel.IsZero() {
		return common.CountResponse{}, common.Errorf(common.ErrInvalid, "empty selector")
	}
	var resp common.CountResponse
	err := s.do(func() error {
		now := s.clock.Now()
		var firstErr error
		for _, e := range s.sortedEntries() {
			if !sel.Matches(e.alarm.ID, e.alarm.Name) {
				continue
			}
			if e.alarm.Enabled == enabled {
				continue
			}
			a := *e.alarm
			wasActive := a.State == common.AlarmRinging || a.State == common.AlarmSnoozed
			if enabled {
				next, err := NextOccurrence(&a, now)
				if err != nil {
					s.log.Error("enable alarm %s: %v", a.ID, err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				a.Enabled = true
				a.State = common.AlarmScheduled
				a.NextFireAt = next
			} else {
				a.Enabled = false
				a.State = common.AlarmDisabled
				a.NextFireAt = time.Time{}
			}
			a.SnoozeUntil = time.Time{}
			if err := s.store.Update(&a); err != nil {
				s.log.Error("persist toggled alarm %s: %v", a.ID, err)
				if firstErr == nil {
					firstErr = common.Errorf(common.ErrInternal, "persist alarm %s: %v", a.ID, err)
				}
				continue
			}
			*e.alarm = a
			e.ringStartedAt = time.Time{}
			e.pendingNext = time.Time{}
			e.autoDismissAt = time.Time{}
			if wasActive {
				s.silence(a.ID)
			}
			resp.Count++
			resp.IDs = append(resp.IDs, a.ID)
		}
		return firstErr
	})
	return resp, err
}

// sortedEntries returns the entries in a deterministic order so
// multi-alarm operations report stable id lists.
func (s *AlarmScheduler) sortedEntries() []*alarmEntry {
	es := make([]*alarmEntry, 0, len(s.entries))
	for _, e := range s.entries {
		es = append(es, e)
	}
	sort.Slice(es, func(i, j int) bool {
		ai, aj := es[i].alarm, es[j].alarm
		if !ai.CreatedAt.Equal(aj.CreatedAt) {
			return ai.CreatedAt.Before(aj.CreatedAt)
		}
		return ai.ID < aj.ID
	})
	return es
}
