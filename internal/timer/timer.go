package timer

import (
	"fmt"
	"time"

	"github.com/matchday/timekeeper/internal/match"
)

// MatchDurationSeconds is the full countdown for a soccer match: 90 minutes.
const MatchDurationSeconds = 5400

// Initialize returns a fresh timer at the full match duration, not running.
func Initialize(now time.Time) match.TimerState {
	return match.TimerState{
		SecondsRemaining: MatchDurationSeconds,
		IsRunning:        false,
		LastUpdate:       now,
		TotalPausedTime:  0,
	}
}

// Pause stops the countdown. Idempotent on an already-paused timer.
func Pause(ts match.TimerState, now time.Time) match.TimerState {
	ts.IsRunning = false
	ts.LastUpdate = now
	return ts
}

// Resume starts the countdown. Resuming an expired timer is allowed; the next
// Reconcile immediately expires it again.
func Resume(ts match.TimerState, now time.Time) match.TimerState {
	ts.IsRunning = true
	ts.LastUpdate = now
	return ts
}

// Reset returns the timer to the full match duration and stops it.
func Reset(ts match.TimerState, now time.Time) match.TimerState {
	ts.SecondsRemaining = MatchDurationSeconds
	ts.IsRunning = false
	ts.LastUpdate = now
	ts.TotalPausedTime = 0
	return ts
}

// Reconcile catches a running timer up to now. There is no background ticker;
// every observation of a match must run the persisted state through Reconcile
// before trusting SecondsRemaining. Elapsed time is truncated toward zero,
// the remaining time never goes negative, and a timer that reaches zero is
// forced to stop.
func Reconcile(ts match.TimerState, now time.Time) match.TimerState {
	if !ts.IsRunning {
		return ts
	}

	elapsed := int(now.Sub(ts.LastUpdate).Seconds())
	if elapsed < 0 {
		// A backwards wall-clock step must never add time back.
		elapsed = 0
	}
	remaining := ts.SecondsRemaining - elapsed
	if remaining < 0 {
		remaining = 0
	}

	ts.SecondsRemaining = remaining
	ts.LastUpdate = now
	if remaining == 0 {
		ts.IsRunning = false
	}
	return ts
}

// Tick decrements a running timer by exactly one second. Fixed-step
// alternative to Reconcile for callers driving their own loop; terminal
// behavior is the same.
func Tick(ts match.TimerState, now time.Time) match.TimerState {
	if ts.IsRunning && ts.SecondsRemaining > 0 {
		ts.SecondsRemaining--
		ts.LastUpdate = now
		if ts.SecondsRemaining == 0 {
			ts.IsRunning = false
		}
	}
	return ts
}

// FormatTime renders seconds as zero-padded HH:MM:SS, e.g. 5400 -> "01:30:00".
func FormatTime(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// ElapsedTime reports how much of the match has been used up.
func ElapsedTime(ts match.TimerState) int {
	return MatchDurationSeconds - ts.SecondsRemaining
}
