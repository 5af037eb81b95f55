// Package access holds the permission predicates for match operations.
// It is stateless: every check is an exact comparison against the record
// the caller already holds.
package access

import (
	"github.com/matchday/timekeeper/internal/match"
)

// IsAdmin reports whether userID created the match. Comparison is exact and
// case-sensitive.
func IsAdmin(userID string, m *match.Match) bool {
	return userID == m.AdminID
}

// CanControlTimer reports whether userID may pause/resume/reset/stop the
// match timer. Control is admin-exclusive; there is no delegation.
func CanControlTimer(userID string, m *match.Match) bool {
	return IsAdmin(userID, m)
}

// CanViewMatch reports whether userID may view the match. Anyone can.
func CanViewMatch(userID string, m *match.Match) bool {
	return true
}
