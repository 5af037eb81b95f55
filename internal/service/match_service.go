package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/matchday/timekeeper/internal/access"
	"github.com/matchday/timekeeper/internal/match"
	"github.com/matchday/timekeeper/internal/store"
	"github.com/matchday/timekeeper/internal/timer"
)

// Timer operation names accepted by ApplyTimerOperation.
const (
	OpPause  = "pause"
	OpResume = "resume"
	OpReset  = "reset"
	OpStop   = "stop"
)

// MatchService orchestrates match lifecycle: creation, lookup, timer control
// and soft deletion. Every call loads fresh state from the store and persists
// the result; no match is cached between calls, so staleness is bounded by
// how often the caller refreshes.
type MatchService struct {
	store *store.MatchStore
	clock clockwork.Clock
}

func NewMatchService(store *store.MatchStore, clock clockwork.Clock) *MatchService {
	return &MatchService{store: store, clock: clock}
}

// CreateMatch generates a fresh id, initializes the timer at the full match
// duration and persists the new record. The description must already be
// validated by the caller.
func (s *MatchService) CreateMatch(ctx context.Context, description string, adminID string) (*match.Match, error) {
	now := s.clock.Now()
	m := &match.Match{
		MatchUUID:   uuid.NewString(),
		Description: description,
		AdminID:     adminID,
		TimerState:  timer.Initialize(now),
		CreatedAt:   now,
		IsActive:    true,
	}

	if err := s.store.SaveMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save match: %w", err)
	}
	return m, nil
}

// GetMatch returns the stored match, or nil if the id is unknown.
func (s *MatchService) GetMatch(ctx context.Context, matchUUID string) (*match.Match, error) {
	return s.store.LoadMatch(ctx, matchUUID)
}

// UpdateMatch persists the full current state of a match the caller holds.
// Last write wins; there is no version token.
func (s *MatchService) UpdateMatch(ctx context.Context, m *match.Match) error {
	return s.store.SaveMatch(ctx, m)
}

// DeleteMatch marks a match inactive (soft delete). Deleting an unknown id
// is a no-op.
func (s *MatchService) DeleteMatch(ctx context.Context, matchUUID string) error {
	m, err := s.store.LoadMatch(ctx, matchUUID)
	if err != nil {
		return err
	}
	if m == nil {
		return nil
	}

	m.IsActive = false
	m.TimerState.IsRunning = false
	return s.store.SaveMatch(ctx, m)
}

// ListActiveMatches loads each id in order, silently dropping unknown and
// soft-deleted matches.
func (s *MatchService) ListActiveMatches(ctx context.Context, matchUUIDs []string) ([]match.Match, error) {
	active := make([]match.Match, 0, len(matchUUIDs))
	for _, matchUUID := range matchUUIDs {
		m, err := s.store.LoadMatch(ctx, matchUUID)
		if err != nil {
			return nil, err
		}
		if m != nil && m.IsActive {
			active = append(active, *m)
		}
	}
	return active, nil
}

// Refresh reconciles the match timer against the current wall clock and
// returns the updated record. Pure with respect to storage: the caller
// decides whether to persist the result. Every read path must refresh
// before trusting SecondsRemaining.
func (s *MatchService) Refresh(m *match.Match) *match.Match {
	refreshed := *m
	refreshed.TimerState = timer.Reconcile(m.TimerState, s.clock.Now())
	return &refreshed
}

// ApplyTimerOperation performs a named control operation on behalf of userID
// and persists the outcome. The operation is gated on admin access and on the
// match still being active; nothing is persisted on rejection. Returns the
// updated match, or nil if the id is unknown.
func (s *MatchService) ApplyTimerOperation(ctx context.Context, matchUUID string, userID string, operation string) (*match.Match, error) {
	m, err := s.store.LoadMatch(ctx, matchUUID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	if !access.CanControlTimer(userID, m) {
		return nil, ErrNotAdmin
	}
	if !m.IsActive {
		return nil, ErrInactiveMatch
	}

	now := s.clock.Now()
	switch operation {
	case OpPause:
		m.TimerState = timer.Pause(m.TimerState, now)
	case OpResume:
		m.TimerState = timer.Resume(m.TimerState, now)
	case OpReset:
		m.TimerState = timer.Reset(m.TimerState, now)
	case OpStop:
		m.IsActive = false
		m.TimerState.IsRunning = false
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, operation)
	}

	if err := s.store.SaveMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save match: %w", err)
	}
	return m, nil
}
