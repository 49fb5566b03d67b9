package api

import (
	"encoding/json"

	"github.com/chimekit/chime/common"
)

func (s *Api) setTimer(p common.SetTimerParams) (*common.TimerResponse, error) {
	t, err := s.timers.Create(p)
	if err != nil {
		return nil, err
	}
	return &common.TimerResponse{Timer: t}, nil
}

func (s *Api) listTimers() (*common.ListTimersResponse, error) {
	timers, err := s.timers.List()
	if err != nil {
		return nil, err
	}
	return &common.ListTimersResponse{Timers: timers}, nil
}

func (s *Api) cancelTimers(p common.SelectorParams) (*common.CountResponse, error) {
	resp, err := s.timers.Cancel(p.Selector)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Api) setTimerHandler(body json.RawMessage) (any, error) {
	p, err := decode[common.SetTimerParams](body)
	if err != nil {
		return nil, err
	}
	return s.setTimer(p)
}

func (s *Api) listTimersHandler(json.RawMessage) (any, error) {
	return s.listTimers()
}

func (s *Api) cancelTimersHandler(body json.RawMessage) (any, error) {
	p, err := decode[common.SelectorParams](body)
	if err != nil {
		return nil, err
	}
	return s.cancelTimers(p)
}
