package common

import (
	"strings"
	"time"
)

// AlarmState tracks where an alarm is in its ringing lifecycle.
type AlarmState string

const (
	AlarmScheduled AlarmState = "scheduled"
	AlarmRinging   AlarmState = "ringing"
	AlarmSnoozed   AlarmState = "snoozed"
	AlarmDisabled  AlarmState = "disabled"
)

// TimerState tracks the lifecycle of a countdown timer.
type TimerState string

const (
	TimerRunning   TimerState = "running"
	TimerExpired   TimerState = "expired"
	TimerCancelled TimerState = "cancelled"
)

// Alarm is a persistent, optionally repeating time-of-day trigger.
// NextFireAt and SnoozeUntil use the zero time for "not set".
type Alarm struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	TimeOfDay   string     `json:"time"`
	RepeatDays  []string   `json:"repeat_days,omitempty"`
	CronExpr    string     `json:"cron_expr,omitempty"`
	Sound       string     `json:"sound"`
	Volume      float64    `json:"volume"`
	Enabled     bool       `json:"enabled"`
	State       AlarmState `json:"state"`
	NextFireAt  time.Time  `json:"next_fire_at,omitzero"`
	SnoozeUntil time.Time  `json:"snooze_until,omitzero"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Repeats reports whether the alarm recurs rather than firing once.
func (a *Alarm) Repeats() bool {
	return len(a.RepeatDays) > 0 || a.CronExpr != ""
}

// Timer is an ephemeral countdown trigger. Remaining is computed at list
// time as end_at - now, clamped to zero; it is never stored.
type Timer struct {
	ID        string        `json:"id"`
	Name      string        `json:"name,omitempty"`
	Duration  time.Duration `json:"duration"`
	EndAt     time.Time     `json:"end_at"`
	State     TimerState    `json:"state"`
	Sound     string        `json:"sound"`
	CreatedAt time.Time     `json:"created_at"`
	Remaining time.Duration `json:"remaining"`
}

// Selector targets alarms or timers by exact id, case-insensitive name
// substring, or "all". Exactly one field should be set.
type Selector struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	All  bool   `json:"all,omitempty"`
}

// IsZero reports whether the selector targets nothing.
func (s Selector) IsZero() bool {
	return s.ID == "" && s.Name == "" && !s.All
}

// Matches reports whether the selector targets the entity with the given
// id and name. Name matching is a case-insensitive substring match.
func (s Selector) Matches(id, name string) bool {
	switch {
	case s.All:
		return true
	case s.ID != "":
		return s.ID == id
	case s.Name != "":
		return strings.Contains(strings.ToLower(name), strings.ToLower(s.Name))
	}
	return false
}

type SetAlarmParams struct {
	Name       string   `json:"name"`
	TimeOfDay  string   `json:"time"`
	RepeatDays []string `json:"repeat_days,omitempty"`
	CronExpr   string   `json:"cron_expr,omitempty"`
	Sound      string   `json:"sound,omitempty"`
	Volume     *float64 `json:"volume,omitempty"`
}

type AlarmResponse struct {
	Alarm Alarm `json:"alarm"`
}

type ListAlarmsResponse struct {
	Alarms []Alarm `json:"alarms"`
}

type SelectorParams struct {
	Selector Selector `json:"selector"`
}

type SnoozeAlarmsParams struct {
	Selector Selector `json:"selector"`
	Minutes  int      `json:"minutes,omitempty"`
}

type ToggleAlarmsParams struct {
	Selector Selector `json:"selector"`
	Enabled  bool     `json:"enabled"`
}

// CountResponse reports a multi-entity operation outcome. Matching zero
// entities is not an error; Count is simply 0.
type CountResponse struct {
	Count int      `json:"count"`
	IDs   []string `json:"ids,omitempty"`
}

type SetTimerParams struct {
	Name     string        `json:"name,omitempty"`
	Duration time.Duration `json:"duration"`
	Sound    string        `json:"sound,omitempty"`
}

type TimerResponse struct {
	Timer Timer `json:"timer"`
}

type ListTimersResponse struct {
	Timers []Timer `json:"timers"`
}

type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"build_type,omitempty"`
}

// Notification payloads pushed to websocket JSON-RPC clients.

type AlarmRingingNotification struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Sound string    `json:"sound"`
	At    time.Time `json:"at"`
}

type AlarmSnoozedNotification struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Until time.Time `json:"until"`
}

type AlarmDismissedNotification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type TimerExpiredNotification struct {
	ID   string    `json:"id"`
	Name string    `json:"name,omitempty"`
	At   time.Time `json:"at"`
}
