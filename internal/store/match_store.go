package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchday/timekeeper/internal/match"
)

type MatchStore struct {
	db *sqlx.DB
}

const (
	saveMatchQuery = `
		INSERT INTO matches (match_uuid, description, admin_id, seconds_remaining, is_running, last_update, total_paused_time, created_at, is_active)
		VALUES (:match_uuid, :description, :admin_id, :seconds_remaining, :is_running, :last_update, :total_paused_time, :created_at, :is_active)
		ON CONFLICT (match_uuid) DO UPDATE SET
			description = excluded.description,
			admin_id = excluded.admin_id,
			seconds_remaining = excluded.seconds_remaining,
			is_running = excluded.is_running,
			last_update = excluded.last_update,
			total_paused_time = excluded.total_paused_time,
			created_at = excluded.created_at,
			is_active = excluded.is_active
	`
	loadMatchQuery      = "SELECT * FROM matches WHERE match_uuid = ?"
	listAllMatchesQuery = "SELECT * FROM matches ORDER BY created_at ASC"
)

// matchRow is the flat persisted shape of a match; the timer state is
// inlined into the matches table.
type matchRow struct {
	MatchUUID        string    `db:"match_uuid"`
	Description      string    `db:"description"`
	AdminID          string    `db:"admin_id"`
	SecondsRemaining int       `db:"seconds_remaining"`
	IsRunning        bool      `db:"is_running"`
	LastUpdate       time.Time `db:"last_update"`
	TotalPausedTime  int       `db:"total_paused_time"`
	CreatedAt        time.Time `db:"created_at"`
	IsActive         bool      `db:"is_active"`
}

func rowFromMatch(m *match.Match) matchRow {
	return matchRow{
		MatchUUID:        m.MatchUUID,
		Description:      m.Description,
		AdminID:          m.AdminID,
		SecondsRemaining: m.TimerState.SecondsRemaining,
		IsRunning:        m.TimerState.IsRunning,
		LastUpdate:       m.TimerState.LastUpdate,
		TotalPausedTime:  m.TimerState.TotalPausedTime,
		CreatedAt:        m.CreatedAt,
		IsActive:         m.IsActive,
	}
}

func (r matchRow) toMatch() *match.Match {
	return &match.Match{
		MatchUUID:   r.MatchUUID,
		Description: r.Description,
		AdminID:     r.AdminID,
		TimerState: match.TimerState{
			SecondsRemaining: r.SecondsRemaining,
			IsRunning:        r.IsRunning,
			LastUpdate:       r.LastUpdate,
			TotalPausedTime:  r.TotalPausedTime,
		},
		CreatedAt: r.CreatedAt,
		IsActive:  r.IsActive,
	}
}

func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{db: db}
}

// SaveMatch upserts the full match record, overwriting any prior value.
// The single statement runs in its own implicit transaction, so concurrent
// saves serialize and readers never see a torn record.
func (s *MatchStore) SaveMatch(ctx context.Context, m *match.Match) error {
	row := rowFromMatch(m)
	if _, err := s.db.NamedExecContext(ctx, saveMatchQuery, row); err != nil {
		return classify(err)
	}
	return nil
}

// LoadMatch returns the match for the given id, or nil if no such match exists.
func (s *MatchStore) LoadMatch(ctx context.Context, matchUUID string) (*match.Match, error) {
	var row matchRow
	err := s.db.GetContext(ctx, &row, loadMatchQuery, matchUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return row.toMatch(), nil
}

// ListAllMatches returns every stored match, oldest first.
func (s *MatchStore) ListAllMatches(ctx context.Context) ([]match.Match, error) {
	var rows []matchRow
	if err := s.db.SelectContext(ctx, &rows, listAllMatchesQuery); err != nil {
		return nil, classify(err)
	}

	matches := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, *row.toMatch())
	}
	return matches, nil
}
