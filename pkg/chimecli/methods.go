package chimecli

import "github.com/chimekit/chime/common"

// SetAlarm creates an alarm and returns it with its first occurrence
// computed.
func (c *Client) SetAlarm(params *common.SetAlarmParams) (*common.AlarmResponse, error) {
	return invoke[common.AlarmResponse](c, common.MethodAlarmSet, params)
}

// ListAlarms returns all alarms, soonest first.
func (c *Client) ListAlarms() (*common.ListAlarmsResponse, error) {
	return invoke[common.ListAlarmsResponse](c, common.MethodAlarmList, nil)
}

// DeleteAlarms removes the alarms matched by the selector.
func (c *Client) DeleteAlarms(sel common.Selector) (*common.CountResponse, error) {
	return invoke[common.CountResponse](c, common.MethodAlarmDelete, &common.SelectorParams{Selector: sel})
}

// StopAlarms dismisses matching ringing or snoozed alarms.
func (c *Client) StopAlarms(sel common.Selector) (*common.CountResponse, error) {
	return invoke[common.CountResponse](c, common.MethodAlarmStop, &common.SelectorParams{Selector: sel})
}

// SnoozeAlarms snoozes matching ringing or snoozed alarms. minutes 0
// applies the daemon's configured default.
func (c *Client) SnoozeAlarms(sel common.Selector, minutes int) (*common.CountResponse, error) {
	return invoke[common.CountResponse](c, common.MethodAlarmSnooze, &common.SnoozeAlarmsParams{Selector: sel, Minutes: minutes})
}

// ToggleAlarms enables or disables matching alarms.
func (c *Client) ToggleAlarms(sel common.Selector, enabled bool) (*common.CountResponse, error) {
	return invoke[common.CountResponse](c, common.MethodAlarmToggle, &common.ToggleAlarmsParams{Selector: sel, Enabled: enabled})
}

// SetTimer starts a countdown timer.
func (c *Client) SetTimer(params *common.SetTimerParams) (*common.TimerResponse, error) {
	return invoke[common.TimerResponse](c, common.MethodTimerSet, params)
}

// ListTimers returns running timers, next to expire first.
func (c *Client) ListTimers() (*common.ListTimersResponse, error) {
	return invoke[common.ListTimersResponse](c, common.MethodTimerList, nil)
}

// CancelTimers cancels the timers matched by the selector.
func (c *Client) CancelTimers(sel common.Selector) (*common.CountResponse, error) {
	return invoke[common.CountResponse](c, common.MethodTimerCancel, &common.SelectorParams{Selector: sel})
}

// Version reports the daemon build information.
func (c *Client) Version() (*common.VersionResponse, error) {
	return invoke[common.VersionResponse](c, common.MethodVersion, nil)
}
