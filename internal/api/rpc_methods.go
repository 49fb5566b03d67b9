package api

import (
	"context"

	"github.com/creachadair/jrpc2/handler"

	"github.com/chimekit/chime/common"
)

// RPCMethods exposes the daemon's operations as JSON-RPC 2.0 handlers
// for the HTTP bridge and websocket endpoint. The methods mirror the
// socket API one to one.
func (s *Api) RPCMethods() handler.Map {
	return handler.Map{
		"alarm.set": handler.New(func(_ context.Context, p common.SetAlarmParams) (*common.AlarmResponse, error) {
			return s.setAlarm(p)
		}),
		"alarm.list": handler.New(func(context.Context) (*common.ListAlarmsResponse, error) {
			return s.listAlarms()
		}),
		"alarm.delete": handler.New(func(_ context.Context, p common.SelectorParams) (*common.CountResponse, error) {
			return s.deleteAlarms(p)
		}),
		"alarm.stop": handler.New(func(_ context.Context, p common.SelectorParams) (*common.CountResponse, error) {
			return s.stopAlarms(p)
		}),
		"alarm.snooze": handler.New(func(_ context.Context, p common.SnoozeAlarmsParams) (*common.CountResponse, error) {
			return s.snoozeAlarms(p)
		}),
		"alarm.toggle": handler.New(func(_ context.Context, p common.ToggleAlarmsParams) (*common.CountResponse, error) {
			return s.toggleAlarms(p)
		}),
		"timer.set": handler.New(func(_ context.Context, p common.SetTimerParams) (*common.TimerResponse, error) {
			return s.setTimer(p)
		}),
		"timer.list": handler.New(func(context.Context) (*common.ListTimersResponse, error) {
			return s.listTimers()
		}),
		"timer.cancel": handler.New(func(_ context.Context, p common.SelectorParams) (*common.CountResponse, error) {
			return s.cancelTimers(p)
		}),
		"system.getVersion": handler.New(func(context.Context) (*common.VersionResponse, error) {
			return &common.VersionResponse{
				Version:   s.version,
				Commit:    s.commit,
				BuildType: s.buildType,
			}, nil
		}),
	}
}
