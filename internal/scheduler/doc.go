// Package scheduler implements the alarm and timer engines. Each engine
// runs a single coordinating goroutine that owns its entity set, applies
// commands in arrival order, and sleeps on exactly one timer programmed
// for the earliest pending deadline, with a 60-second max-sleep cap to
// ride out NTP steps, DST transitions, and system sleep.
//
// Side effects (playback, notifications) are issued as detached,
// panic-isolated, best-effort operations so a slow or failing sink can
// never delay a fire-check. The alarm engine is the single writer of the
// alarm store; restarts reconcile stored schedules forward from the
// current instant and never fire a backlog of missed occurrences.
package scheduler
