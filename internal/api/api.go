// Package api binds the alarm and timer engines to the daemon's client
// surfaces: the framed-JSON socket methods and the JSON-RPC 2.0 methods
// served over HTTP and websocket.
package api

import (
	"github.com/chimekit/chime/common"
	"github.com/chimekit/chime/internal/scheduler"
	"github.com/chimekit/chime/internal/server"
	"github.com/chimekit/chime/pkg/logger"
)

type Api struct {
	log    logger.Logger
	alarms *scheduler.AlarmScheduler
	timers *scheduler.TimerScheduler

	version   string
	commit    string
	buildType string
}

func NewApi(l logger.Logger, alarms *scheduler.AlarmScheduler, timers *scheduler.TimerScheduler, version, commit, buildType string) *Api {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Api{
		log:       l,
		alarms:    alarms,
		timers:    timers,
		version:   version,
		commit:    commit,
		buildType: buildType,
	}
}

func (s *Api) RegisterHandlers(srv *server.Server) {
	// alarm API methods
	srv.RegisterHandler(common.MethodAlarmSet, s.setAlarmHandler)
	srv.RegisterHandler(common.MethodAlarmList, s.listAlarmsHandler)
	srv.RegisterHandler(common.MethodAlarmDelete, s.deleteAlarmsHandler)
	srv.RegisterHandler(common.MethodAlarmStop, s.stopAlarmsHandler)
	srv.RegisterHandler(common.MethodAlarmSnooze, s.snoozeAlarmsHandler)
	srv.RegisterHandler(common.MethodAlarmToggle, s.toggleAlarmsHandler)

	// timer API methods
	srv.RegisterHandler(common.MethodTimerSet, s.setTimerHandler)
	srv.RegisterHandler(common.MethodTimerList, s.listTimersHandler)
	srv.RegisterHandler(common.MethodTimerCancel, s.cancelTimersHandler)

	srv.RegisterHandler(common.MethodVersion, s.versionHandler)
}
