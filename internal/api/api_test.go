package api

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/chimekit/chime/common"
	"github.com/chimekit/chime/internal/notify"
	"github.com/chimekit/chime/internal/scheduler"
	"github.com/chimekit/chime/internal/store"
	"github.com/chimekit/chime/internal/timeutil"
	"github.com/chimekit/chime/pkg/logger"
)

func newTestApi(t *testing.T) *Api {
	t.Helper()
	l := logger.NewNopLogger()
	clock := timeutil.NewMockClock(time.Date(2025, time.March, 10, 7, 0, 0, 0, time.UTC))
	sink := notify.NewLogSink(l)

	alarms := scheduler.NewAlarmScheduler(l, store.NewMemoryAlarmStore(), sink, nil, clock, scheduler.AlarmOptions{})
	if err := alarms.Start(context.Background()); err != nil {
		t.Fatalf("start alarm scheduler: %v", err)
	}
	t.Cleanup(alarms.Shutdown)

	timers := scheduler.NewTimerScheduler(l, store.NewTimerStore(), sink, nil, clock, scheduler.TimerOptions{})
	timers.Start(context.Background())
	t.Cleanup(timers.Shutdown)

	return NewApi(l, alarms, timers, "1.2.3", "abcdef", "dev")
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestAlarmHandlersRoundTrip(t *testing.T) {
	a := newTestApi(t)

	res, err := a.setAlarmHandler(mustJSON(t, common.SetAlarmParams{Name: "morning", TimeOfDay: "07:30"}))
	if err != nil {
		t.Fatalf("alarm_set: %v", err)
	}
	created := res.(*common.AlarmResponse).Alarm
	if created.ID == "" || created.State != common.AlarmScheduled {
		t.Errorf("created alarm = %+v", created)
	}

	res, err = a.listAlarmsHandler(nil)
	if err != nil {
		t.Fatalf("alarm_list: %v", err)
	}
	if alarms := res.(*common.ListAlarmsResponse).Alarms; len(alarms) != 1 || alarms[0].ID != created.ID {
		t.Errorf("listed alarms = %+v", alarms)
	}

	res, err = a.toggleAlarmsHandler(mustJSON(t, common.ToggleAlarmsParams{
		Selector: common.Selector{ID: created.ID},
	}))
	if err != nil {
		t.Fatalf("alarm_toggle: %v", err)
	}
	if n := res.(*common.CountResponse).Count; n != 1 {
		t.Errorf("toggle count = %d, want 1", n)
	}

	res, err = a.deleteAlarmsHandler(mustJSON(t, common.SelectorParams{
		Selector: common.Selector{All: true},
	}))
	if err != nil {
		t.Fatalf("alarm_delete: %v", err)
	}
	if n := res.(*common.CountResponse).Count; n != 1 {
		t.Errorf("delete count = %d, want 1", n)
	}
}

func TestTimerHandlersRoundTrip(t *testing.T) {
	a := newTestApi(t)

	res, err := a.setTimerHandler(mustJSON(t, common.SetTimerParams{Name: "tea", Duration: 3 * time.Minute}))
	if err != nil {
		t.Fatalf("timer_set: %v", err)
	}
	created := res.(*common.TimerResponse).Timer
	if created.Remaining != 3*time.Minute {
		t.Errorf("remaining = %v, want 3m", created.Remaining)
	}

	res, err = a.listTimersHandler(nil)
	if err != nil {
		t.Fatalf("timer_list: %v", err)
	}
	if timers := res.(*common.ListTimersResponse).Timers; len(timers) != 1 {
		t.Errorf("listed timers = %+v", timers)
	}

	res, err = a.cancelTimersHandler(mustJSON(t, common.SelectorParams{
		Selector: common.Selector{ID: created.ID},
	}))
	if err != nil {
		t.Fatalf("timer_cancel: %v", err)
	}
	if n := res.(*common.CountResponse).Count; n != 1 {
		t.Errorf("cancel count = %d, want 1", n)
	}
}

func TestHandlersRejectMalformedBody(t *testing.T) {
	a := newTestApi(t)

	handlers := map[string]func(json.RawMessage) (any, error){
		"alarm_set":    a.setAlarmHandler,
		"alarm_stop":   a.stopAlarmsHandler,
		"alarm_snooze": a.snoozeAlarmsHandler,
		"timer_set":    a.setTimerHandler,
	}
	for name, h := range handlers {
		if _, err := h(json.RawMessage(`{not json`)); common.CodeOf(err) != common.ErrInvalid {
			t.Errorf("%s: expected invalid error, got %v", name, err)
		}
	}
}

func TestHandlersPropagateErrorCodes(t *testing.T) {
	a := newTestApi(t)

	_, err := a.setAlarmHandler(mustJSON(t, common.SetAlarmParams{TimeOfDay: "26:00"}))
	if common.CodeOf(err) != common.ErrInvalid {
		t.Errorf("bad time: code = %v, want invalid", common.CodeOf(err))
	}

	_, err = a.stopAlarmsHandler(mustJSON(t, common.SelectorParams{}))
	if common.CodeOf(err) != common.ErrInvalid {
		t.Errorf("empty selector: code = %v, want invalid", common.CodeOf(err))
	}
}

func TestVersionHandler(t *testing.T) {
	a := newTestApi(t)

	res, err := a.versionHandler(nil)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	v := res.(*common.VersionResponse)
	if v.Version != "1.2.3" || v.Commit != "abcdef" || v.BuildType != "dev" {
		t.Errorf("version = %+v", v)
	}
}

func TestRPCMethodsCoverSocketAPI(t *testing.T) {
	a := newTestApi(t)
	methods := a.RPCMethods()

	for _, name := range []string{
		"alarm.set", "alarm.list", "alarm.delete", "alarm.stop",
		"alarm.snooze", "alarm.toggle",
		"timer.set", "timer.list", "timer.cancel",
		"system.getVersion",
	} {
		if _, ok := methods[name]; !ok {
			t.Errorf("method %s missing from RPC map", name)
		}
	}
}
