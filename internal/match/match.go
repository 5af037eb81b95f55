package match

import (
	"time"
)

// TimerState is the countdown state of a single match. It is owned by its
// Match and persisted alongside it; all transitions go through internal/timer.
type TimerState struct {
	SecondsRemaining int       `json:"seconds_remaining"`
	IsRunning        bool      `json:"is_running"`
	LastUpdate       time.Time `json:"last_update"`
	TotalPausedTime  int       `json:"total_paused_time"`
}

type Match struct {
	MatchUUID   string `json:"match_uuid"`
	Description string `json:"description"`

	// AdminID is the user that created the match and the only one allowed
	// to control its timer.
	AdminID string `json:"admin_id"`

	TimerState TimerState `json:"timer_state"`
	CreatedAt  time.Time  `json:"created_at"`
	IsActive   bool       `json:"is_active"`
}

// User holds the ordered list of matches a user follows. Relations are by
// identifier only; nothing here references a live Match.
type User struct {
	UserID    string   `json:"user_id"`
	MatchList []string `json:"match_list"`
}
