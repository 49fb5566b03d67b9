// Package store holds the repositories backing the schedulers: a durable
// sqlite-backed alarm store and an intentionally volatile in-memory timer
// store. The schedulers are the only writers; readers go through them.
package store

import (
	"errors"

	"github.com/chimekit/chime/common"
)

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// AlarmStore is the durable repository of alarm records. A successful
// Create or Update must survive a process crash immediately after the call
// returns.
type AlarmStore interface {
	// Create inserts a new alarm record.
	Create(a *common.Alarm) error

	// Get returns the alarm with the given id, or ErrNotFound.
	Get(id string) (*common.Alarm, error)

	// List returns all alarms ordered by next_fire_at ascending with
	// disabled alarms last.
	List() ([]*common.Alarm, error)

	// Update overwrites the stored record with the same id, or returns
	// ErrNotFound.
	Update(a *common.Alarm) error

	// Delete removes the alarm with the given id and reports whether a
	// record was removed.
	Delete(id string) (bool, error)

	// DeleteMatching removes every alarm the predicate accepts and returns
	// the removed records.
	DeleteMatching(pred func(*common.Alarm) bool) ([]*common.Alarm, error)

	Close() error
}

func cloneAlarm(a *common.Alarm) *common.Alarm {
	c := *a
	if a.RepeatDays != nil {
		c.RepeatDays = append([]string(nil), a.RepeatDays...)
	}
	return &c
}
