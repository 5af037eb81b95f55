package store

import (
	"context"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday/timekeeper/internal/match"
	"github.com/matchday/timekeeper/internal/timer"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	// Keep every query on the one connection that owns the memory database.
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

func testMatch(adminID string) *match.Match {
	now := time.Now().UTC()
	return &match.Match{
		MatchUUID:   uuid.NewString(),
		Description: "City vs. United",
		AdminID:     adminID,
		TimerState:  timer.Initialize(now),
		CreatedAt:   now,
		IsActive:    true,
	}
}

func TestSaveAndLoadMatch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewMatchStore(db)
	ctx := context.Background()

	m := testMatch(uuid.NewString())
	m.TimerState.SecondsRemaining = 4321
	m.TimerState.IsRunning = true
	m.TimerState.TotalPausedTime = 17

	require.NoError(t, store.SaveMatch(ctx, m))

	loaded, err := store.LoadMatch(ctx, m.MatchUUID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, m.MatchUUID, loaded.MatchUUID)
	assert.Equal(t, m.Description, loaded.Description)
	assert.Equal(t, m.AdminID, loaded.AdminID)
	assert.Equal(t, m.TimerState.SecondsRemaining, loaded.TimerState.SecondsRemaining)
	assert.Equal(t, m.TimerState.IsRunning, loaded.TimerState.IsRunning)
	assert.Equal(t, m.TimerState.TotalPausedTime, loaded.TimerState.TotalPausedTime)
	assert.WithinDuration(t, m.TimerState.LastUpdate, loaded.TimerState.LastUpdate, time.Millisecond)
	assert.WithinDuration(t, m.CreatedAt, loaded.CreatedAt, time.Millisecond)
	assert.Equal(t, m.IsActive, loaded.IsActive)
}

func TestLoadMatchAbsent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewMatchStore(db)

	loaded, err := store.LoadMatch(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSaveMatchOverwrites(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewMatchStore(db)
	ctx := context.Background()

	m := testMatch(uuid.NewString())
	require.NoError(t, store.SaveMatch(ctx, m))

	m.TimerState.SecondsRemaining = 100
	m.TimerState.IsRunning = true
	m.IsActive = false
	require.NoError(t, store.SaveMatch(ctx, m))

	loaded, err := store.LoadMatch(ctx, m.MatchUUID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 100, loaded.TimerState.SecondsRemaining)
	assert.True(t, loaded.TimerState.IsRunning)
	assert.False(t, loaded.IsActive)

	// Still a single record.
	matches, err := store.ListAllMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestListAllMatches(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewMatchStore(db)
	ctx := context.Background()

	matches, err := store.ListAllMatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)

	adminID := uuid.NewString()
	m1 := testMatch(adminID)
	m2 := testMatch(adminID)
	m2.IsActive = false
	require.NoError(t, store.SaveMatch(ctx, m1))
	require.NoError(t, store.SaveMatch(ctx, m2))

	matches, err = store.ListAllMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	ids := []string{matches[0].MatchUUID, matches[1].MatchUUID}
	assert.Contains(t, ids, m1.MatchUUID)
	assert.Contains(t, ids, m2.MatchUUID)
}
