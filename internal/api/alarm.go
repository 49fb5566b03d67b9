package api

import (
	"encoding/json"

	"github.com/chimekit/chime/common"
)

func decode[T any](body json.RawMessage) (T, error) {
	var p T
	if len(body) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return p, common.Errorf(common.ErrInvalid, "bad params: %v", err)
	}
	return p, nil
}

func (s *Api) setAlarm(p common.SetAlarmParams) (*common.AlarmResponse, error) {
	a, err := s.alarms.Create(p)
	if err != nil {
		return nil, err
	}
	return &common.AlarmResponse{Alarm: a}, nil
}

func (s *Api) listAlarms() (*common.ListAlarmsResponse, error) {
	alarms, err := s.alarms.List()
	if err != nil {
		return nil, err
	}
	return &common.ListAlarmsResponse{Alarms: alarms}, nil
}

func (s *Api) deleteAlarms(p common.SelectorParams) (*common.CountResponse, error) {
	resp, err := s.alarms.Delete(p.Selector)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Api) stopAlarms(p common.SelectorParams) (*common.CountResponse, error) {
	resp, err := s.alarms.Stop(p.Selector)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Api) snoozeAlarms(p common.SnoozeAlarmsParams) (*common.CountResponse, error) {
	resp, err := s.alarms.Snooze(p.Selector, p.Minutes)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Api) toggleAlarms(p common.ToggleAlarmsParams) (*common.CountResponse, error) {
	resp, err := s.alarms.Toggle(p.Selector, p.Enabled)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Api) setAlarmHandler(body json.RawMessage) (any, error) {
	p, err := decode[common.SetAlarmParams](body)
	if err != nil {
		return nil, err
	}
	return s.setAlarm(p)
}

func (s *Api) listAlarmsHandler(json.RawMessage) (any, error) {
	return s.listAlarms()
}

func (s *Api) deleteAlarmsHandler(body json.RawMessage) (any, error) {
	p, err := decode[common.SelectorParams](body)
	if err != nil {
		return nil, err
	}
	return s.deleteAlarms(p)
}

func (s *Api) stopAlarmsHandler(body json.RawMessage) (any, error) {
	p, err := decode[common.SelectorParams](body)
	if err != nil {
		return nil, err
	}
	return s.stopAlarms(p)
}

func (s *Api) snoozeAlarmsHandler(body json.RawMessage) (any, error) {
	p, err := decode[common.SnoozeAlarmsParams](body)
	if err != nil {
		return nil, err
	}
	return s.snoozeAlarms(p)
}

func (s *Api) toggleAlarmsHandler(body json.RawMessage) (any, error) {
	p, err := decode[common.ToggleAlarmsParams](body)
	if err != nil {
		return nil, err
	}
	return s.toggleAlarms(p)
}
