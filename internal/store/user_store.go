package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// UserStore persists each user's ordered follow list. The whole list is
// overwritten on save, mirroring the match upsert semantics.
type UserStore struct {
	db *sqlx.DB
}

const (
	deleteUserMatchesQuery = "DELETE FROM user_matches WHERE user_id = ?"
	insertUserMatchQuery   = "INSERT INTO user_matches (user_id, match_uuid, position) VALUES (?, ?, ?)"
	loadUserMatchesQuery   = "SELECT match_uuid FROM user_matches WHERE user_id = ? ORDER BY position ASC"
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// SaveUserMatches replaces the user's follow list with matchUUIDs, keeping
// their order. Delete and re-insert run in one transaction so a concurrent
// load never observes a half-written list.
func (s *UserStore) SaveUserMatches(ctx context.Context, userID string, matchUUIDs []string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteUserMatchesQuery, userID); err != nil {
		return classify(err)
	}
	for position, matchUUID := range matchUUIDs {
		if _, err := tx.ExecContext(ctx, insertUserMatchQuery, userID, matchUUID, position); err != nil {
			return classify(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	return nil
}

// LoadUserMatches returns the user's follow list in insertion order. An
// unknown user yields an empty list, not an error.
func (s *UserStore) LoadUserMatches(ctx context.Context, userID string) ([]string, error) {
	matchUUIDs := []string{}
	if err := s.db.SelectContext(ctx, &matchUUIDs, loadUserMatchesQuery, userID); err != nil {
		return nil, classify(err)
	}
	return matchUUIDs, nil
}
