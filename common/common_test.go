package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestSelectorMatches(t *testing.T) {
	cases := []struct {
		sel      Selector
		id, name string
		want     bool
	}{
		{Selector{All: true}, "any", "thing", true},
		{Selector{ID: "a1"}, "a1", "wake", true},
		{Selector{ID: "a1"}, "a2", "wake", false},
		{Selector{Name: "work"}, "a1", "Morning Work Alarm", true},
		{Selector{Name: "WORK"}, "a1", "workout", true},
		{Selector{Name: "gym"}, "a1", "work", false},
		{Selector{}, "a1", "work", false},
	}
	for _, tc := range cases {
		if got := tc.sel.Matches(tc.id, tc.name); got != tc.want {
			t.Errorf("%+v.Matches(%q, %q) = %v, want %v", tc.sel, tc.id, tc.name, got, tc.want)
		}
	}
}

func TestSelectorIsZero(t *testing.T) {
	if !(Selector{}).IsZero() {
		t.Error("empty selector should be zero")
	}
	for _, sel := range []Selector{{ID: "a"}, {Name: "n"}, {All: true}} {
		if sel.IsZero() {
			t.Errorf("%+v reported zero", sel)
		}
	}
}

func TestAlarmRepeats(t *testing.T) {
	if (&Alarm{}).Repeats() {
		t.Error("bare alarm repeats")
	}
	if !(&Alarm{RepeatDays: []string{"mon"}}).Repeats() {
		t.Error("repeat-day alarm does not repeat")
	}
	if !(&Alarm{CronExpr: "0 9 * * *"}).Repeats() {
		t.Error("cron alarm does not repeat")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %q", got)
	}
	if got := CodeOf(Errorf(ErrNotFound, "missing")); got != ErrNotFound {
		t.Errorf("CodeOf = %q, want not_found", got)
	}
	wrapped := fmt.Errorf("outer: %w", Errorf(ErrInvalid, "bad"))
	if got := CodeOf(wrapped); got != ErrInvalid {
		t.Errorf("CodeOf(wrapped) = %q, want invalid", got)
	}
	if got := CodeOf(errors.New("plain")); got != ErrInternal {
		t.Errorf("CodeOf(plain) = %q, want internal", got)
	}
}

func TestErrorString(t *testing.T) {
	err := Errorf(ErrInvalid, "volume %v out of range", 1.5)
	want := "invalid: volume 1.5 out of range"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
