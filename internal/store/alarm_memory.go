package store

import (
	"sort"
	"sync"

	"github.com/chimekit/chime/common"
)

// MemoryAlarmStore is an in-memory AlarmStore used in tests and as a
// fallback when no database path is configured. It offers no durability.
type MemoryAlarmStore struct {
	mu     sync.RWMutex
	alarms map[string]*common.Alarm
}

func NewMemoryAlarmStore() *MemoryAlarmStore {
	return &MemoryAlarmStore{alarms: make(map[string]*common.Alarm)}
}

var _ AlarmStore = (*MemoryAlarmStore)(nil)

func (s *MemoryAlarmStore) Create(a *common.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alarms[a.ID] = cloneAlarm(a)
	return nil
}

func (s *MemoryAlarmStore) Get(id string) (*common.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.alarms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneAlarm(a), nil
}

func (s *MemoryAlarmStore) List() ([]*common.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alarms := make([]*common.Alarm, 0, len(s.alarms))
	for _, a := range s.alarms {
		alarms = append(alarms, cloneAlarm(a))
	}
	SortAlarms(alarms)
	return alarms, nil
}

func (s *MemoryAlarmStore) Update(a *common.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alarms[a.ID]; !ok {
		return ErrNotFound
	}
	s.alarms[a.ID] = cloneAlarm(a)
	return nil
}

func (s *MemoryAlarmStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alarms[id]; !ok {
		return false, nil
	}
	delete(s.alarms, id)
	return true, nil
}

func (s *MemoryAlarmStore) DeleteMatching(pred func(*common.Alarm) bool) ([]*common.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted []*common.Alarm
	for id, a := range s.alarms {
		if pred(a) {
			deleted = append(deleted, a)
			delete(s.alarms, id)
		}
	}
	SortAlarms(deleted)
	return deleted, nil
}

func (s *MemoryAlarmStore) Close() error { return nil }

// SortAlarms orders alarms by next_fire_at ascending with alarms that have
// no pending occurrence last, ties broken by creation time.
func SortAlarms(alarms []*common.Alarm) {
	sort.SliceStable(alarms, func(i, j int) bool {
		a, b := alarms[i], alarms[j]
		switch {
		case a.NextFireAt.IsZero() != b.NextFireAt.IsZero():
			return !a.NextFireAt.IsZero()
		case !a.NextFireAt.IsZero() && !a.NextFireAt.Equal(b.NextFireAt):
			return a.NextFireAt.Before(b.NextFireAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
