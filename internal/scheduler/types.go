package scheduler

import (
	"time"

	"github.com/chimekit/chime/common"
)

// alarmEntry is the loop-owned scheduling state for one alarm. The
// embedded alarm record is authoritative in memory; the store mirrors it.
type alarmEntry struct {
	alarm *common.Alarm

	// ringStartedAt anchors snooze arithmetic: snoozing an already
	// snoozed alarm again yields the same snooze_until.
	ringStartedAt time.Time

	// pendingNext is the following occurrence of a repeating alarm,
	// computed from the instant that fired rather than from "now", so a
	// long ring or snooze cannot shift the schedule.
	pendingNext time.Time

	// autoDismissAt bounds how long an unattended alarm may ring.
	autoDismissAt time.Time
}

// deadline returns the next instant this entry needs attention, or the
// zero time when it is idle.
func (e *alarmEntry) deadline() time.Time {
	switch e.alarm.State {
	case common.AlarmScheduled:
		return e.alarm.NextFireAt
	case common.AlarmSnoozed:
		return e.alarm.SnoozeUntil
	case common.AlarmRinging:
		return e.autoDismissAt
	}
	return time.Time{}
}

// timerEvent is a pending countdown expiry in the timer heap. It is an
// in-memory only type; timers do not survive a daemon restart.
type timerEvent struct {
	ID    string
	EndAt time.Time
}
