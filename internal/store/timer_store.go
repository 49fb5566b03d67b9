package store

import (
	"sort"
	"sync"

	"github.com/chimekit/chime/common"
)

// TimerStore keeps running timers in memory. Timers are deliberately not
// persisted; a daemon restart loses them.
type TimerStore struct {
	mu     sync.RWMutex
	timers map[string]*common.Timer
}

func NewTimerStore() *TimerStore {
	return &TimerStore{timers: make(map[string]*common.Timer)}
}

func (s *TimerStore) Add(t *common.Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[t.ID] = cloneTimer(t)
}

// Get returns the timer with the given id, or ErrNotFound.
func (s *TimerStore) Get(id string) (*common.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.timers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTimer(t), nil
}

// List returns the active timers ordered by end time ascending.
func (s *TimerStore) List() []*common.Timer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	timers := make([]*common.Timer, 0, len(s.timers))
	for _, t := range s.timers {
		timers = append(timers, cloneTimer(t))
	}
	sort.Slice(timers, func(i, j int) bool {
		return timers[i].EndAt.Before(timers[j].EndAt)
	})
	return timers
}

// Remove deletes the timer with the given id and reports whether it existed.
func (s *TimerStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timers[id]; !ok {
		return false
	}
	delete(s.timers, id)
	return true
}

func cloneTimer(t *common.Timer) *common.Timer {
	c := *t
	return &c
}
