package scheduler

import (
	"strconv"
	"strings"
	"time"

	"github.com/adhocore/gronx"
	"github.com/chimekit/chime/common"
)

var dayIndex = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// ParseTimeOfDay parses a local "HH:MM" value.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, common.Errorf(common.ErrInvalid, "time %q is not in HH:MM format", s)
	}
	hour, err = strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, common.Errorf(common.ErrInvalid, "time %q has an invalid hour", s)
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, common.Errorf(common.ErrInvalid, "time %q has an invalid minute", s)
	}
	return hour, minute, nil
}

// NormalizeRepeatDays lowercases and validates weekday tokens, dropping
// duplicates while preserving week order.
func NormalizeRepeatDays(days []string) ([]string, error) {
	if len(days) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		tok := strings.ToLower(strings.TrimSpace(d))
		if _, ok := dayIndex[tok]; !ok {
			return nil, common.Errorf(common.ErrInvalid, "unknown day token %q", d)
		}
		seen[tok] = true
	}
	var out []string
	for _, tok := range common.WeekdayTokens {
		if seen[tok] {
			out = append(out, tok)
		}
	}
	return out, nil
}

// NextOccurrence computes the next instant the alarm must fire, strictly
// after now. It is the single source of truth for "when next": the same
// computation runs on create, after every trigger of a repeating alarm,
// and during restart reconciliation. It never looks backward.
func NextOccurrence(a *common.Alarm, now time.Time) (time.Time, error) {
	if a.CronExpr != "" {
		next, err := gronx.NextTickAfter(a.CronExpr, now, false)
		if err != nil {
			return time.Time{}, common.Errorf(common.ErrInvalid, "cron %q: %v", a.CronExpr, err)
		}
		return next, nil
	}

	hour, minute, err := ParseTimeOfDay(a.TimeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	dayAt := func(base time.Time, offset int) time.Time {
		return time.Date(base.Year(), base.Month(), base.Day()+offset,
			hour, minute, 0, 0, base.Location())
	}

	if len(a.RepeatDays) == 0 {
		candidate := dayAt(now, 0)
		if !candidate.After(now) {
			candidate = dayAt(now, 1)
		}
		return candidate, nil
	}

	targets := make(map[time.Weekday]bool, len(a.RepeatDays))
	for _, tok := range a.RepeatDays {
		wd, ok := dayIndex[strings.ToLower(tok)]
		if !ok {
			return time.Time{}, common.Errorf(common.ErrInvalid, "unknown day token %q", tok)
		}
		targets[wd] = true
	}

	// Offset 7 covers an alarm whose only repeat day is today but whose
	// time of day has already passed.
	for offset := 0; offset <= 7; offset++ {
		candidate := dayAt(now, offset)
		if targets[candidate.Weekday()] && candidate.After(now) {
			return candidate, nil
		}
	}
	return time.Time{}, common.Errorf(common.ErrInternal,
		"no next occurrence within 7 days for alarm %q", a.Name)
}

// ValidateCron checks a cron expression without computing an occurrence.
func ValidateCron(expr string) error {
	if !gronx.New().IsValid(expr) {
		return common.Errorf(common.ErrInvalid, "invalid cron expression %q", expr)
	}
	return nil
}
