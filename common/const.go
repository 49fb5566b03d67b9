package common

// Method identifies an RPC method on the daemon socket.
type Method string

const (
	MethodAlarmSet    Method = "alarm_set"
	MethodAlarmList   Method = "alarm_list"
	MethodAlarmDelete Method = "alarm_delete"
	MethodAlarmStop   Method = "alarm_stop"
	MethodAlarmSnooze Method = "alarm_snooze"
	MethodAlarmToggle Method = "alarm_toggle"
	MethodTimerSet    Method = "timer_set"
	MethodTimerList   Method = "timer_list"
	MethodTimerCancel Method = "timer_cancel"
	MethodVersion     Method = "version"
)

// Push notification methods sent to websocket JSON-RPC clients.
const (
	NotifyAlarmRinging   = "alarm.ringing"
	NotifyAlarmSnoozed   = "alarm.snoozed"
	NotifyAlarmDismissed = "alarm.dismissed"
	NotifyTimerExpired   = "timer.expired"
)

// WeekdayTokens are the repeat-day tokens accepted on the wire, in week order.
var WeekdayTokens = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// SoundNames are the built-in sound names shipped with the daemon.
var SoundNames = []string{"default", "gentle", "beep", "chime", "bell"}

const (
	// DefaultSnoozeMinutes is used when a snooze request carries no duration.
	DefaultSnoozeMinutes = 9

	// DefaultAutoDismissMinutes bounds how long an alarm may ring unattended.
	DefaultAutoDismissMinutes = 10

	// DefaultVolume is the playback volume used when none is configured.
	DefaultVolume = 0.5

	// DefaultSound is the sound name used when none is given.
	DefaultSound = "default"
)
