package service

import (
	"context"
	"slices"

	"github.com/matchday/timekeeper/internal/store"
)

// UserService manages each user's follow list. Membership is caller-managed;
// creating a match does not follow it.
type UserService struct {
	store *store.UserStore
}

func NewUserService(store *store.UserStore) *UserService {
	return &UserService{store: store}
}

// FollowMatch appends matchUUID to the user's follow list. Duplicates are
// ignored, preserving the original position.
func (s *UserService) FollowMatch(ctx context.Context, userID string, matchUUID string) error {
	matchList, err := s.store.LoadUserMatches(ctx, userID)
	if err != nil {
		return err
	}

	if slices.Contains(matchList, matchUUID) {
		return nil
	}

	matchList = append(matchList, matchUUID)
	return s.store.SaveUserMatches(ctx, userID, matchList)
}

// UnfollowMatch removes matchUUID from the user's follow list. Removing an
// id the user does not follow is a no-op.
func (s *UserService) UnfollowMatch(ctx context.Context, userID string, matchUUID string) error {
	matchList, err := s.store.LoadUserMatches(ctx, userID)
	if err != nil {
		return err
	}

	index := slices.Index(matchList, matchUUID)
	if index < 0 {
		return nil
	}

	matchList = slices.Delete(matchList, index, index+1)
	return s.store.SaveUserMatches(ctx, userID, matchList)
}

// GetUserMatches returns the ids the user follows, in insertion order.
func (s *UserService) GetUserMatches(ctx context.Context, userID string) ([]string, error) {
	return s.store.LoadUserMatches(ctx, userID)
}
