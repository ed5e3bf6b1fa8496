package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferencesDefaultWhenEmpty(t *testing.T) {
	s := openTestStore(t)

	prefs, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "info", prefs.LogLevel)
	assert.True(t, prefs.ArchiveGames)
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := &Preferences{
		LogLevel:     "debug",
		ArchiveGames: false,
		LastUsed:     time.Now().UTC(),
	}
	require.NoError(t, s.SavePreferences(in))

	out, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, in.LogLevel, out.LogLevel)
	assert.Equal(t, in.ArchiveGames, out.ArchiveGames)
	assert.True(t, in.LastUsed.Equal(out.LastUsed))
}

func TestGameRecordRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rec := &GameRecord{
		ID:       "test-game",
		StartFEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Moves:    []string{"e2e4", "e7e5"},
		SAN:      []string{"e4", "e5"},
		FinalFEN: "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
	}
	require.NoError(t, s.SaveGame(rec))

	loaded, err := s.LoadGame("test-game")
	require.NoError(t, err)
	assert.Equal(t, rec.StartFEN, loaded.StartFEN)
	assert.Equal(t, rec.Moves, loaded.Moves)
	assert.Equal(t, rec.SAN, loaded.SAN)
	assert.False(t, loaded.SavedAt.IsZero(), "SaveGame stamps the record")
}

func TestGamesListsAll(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveGame(&GameRecord{ID: "a", Moves: []string{"e2e4"}}))
	require.NoError(t, s.SaveGame(&GameRecord{ID: "b", Moves: []string{"d2d4"}}))

	games, err := s.Games()
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestSaveGameAssignsID(t *testing.T) {
	s := openTestStore(t)

	rec := &GameRecord{Moves: []string{"e2e4"}}
	require.NoError(t, s.SaveGame(rec))
	assert.NotEmpty(t, rec.ID)

	loaded, err := s.LoadGame(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Moves, loaded.Moves)
}
