package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"bowling-tracker/internal/database"
	"bowling-tracker/internal/db"
	"bowling-tracker/internal/domain"
	"bowling-tracker/internal/metrics"
	"bowling-tracker/internal/repository"
	"bowling-tracker/internal/scoring"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type sequentialIDs struct{ n atomic.Int64 }

func (s *sequentialIDs) NewGameID(now time.Time) (string, error) {
	return fmt.Sprintf("%d_%d", now.UnixMilli(), s.n.Add(1)), nil
}

var testNow = time.UnixMilli(1_700_000_000_000)

func newTestService(t *testing.T) *GameService {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "games.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	repo := repository.NewGameRepository(sqlDB, db.New(sqlDB), zerolog.Nop())
	assembler := scoring.NewAssembler(
		scoring.WithClock(scoring.ClockFunc(func() time.Time { return testNow })),
		scoring.WithIDGenerator(&sequentialIDs{}),
	)
	return NewGameService(repo, assembler, metrics.New(metrics.NewRegistry()), zerolog.Nop())
}

func decodeInput(t *testing.T, body string) SaveGameInput {
	t.Helper()
	var in SaveGameInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestGameService_SaveGame_ScoresWhenOmitted(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	in := decodeInput(t, `{"frames":[[10],[10],[10],[10],[10],[10],[10],[10],[10],[10,10,10]],"league":"Monday","patterns":["b","a"]}`)
	game, err := svc.SaveGame(ctx, in)
	require.NoError(t, err)

	require.Equal(t, 300, game.TotalScore)
	require.Equal(t, []int{30, 60, 90, 120, 150, 180, 210, 240, 270, 300}, game.FrameScores)
	require.True(t, game.IsPerfect)
	require.True(t, game.IsClean)
	require.Equal(t, []string{"a", "b"}, game.Patterns)
	require.Nil(t, game.Balls)

	stored, err := svc.GetGame(ctx, game.GameID)
	require.NoError(t, err)
	require.Equal(t, *game, *stored)
}

func TestGameService_SaveGame_KeepsSuppliedScores(t *testing.T) {
	svc := newTestService(t)

	in := decodeInput(t, `{"frames":[[5,4]],"frameScores":[9],"totalScore":9,"isPractice":true}`)
	game, err := svc.SaveGame(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, []int{9}, game.FrameScores)
	require.Equal(t, 9, game.TotalScore)
	require.False(t, game.IsClean)
}

func TestGameService_SaveGame_TotalFollowsSuppliedFrameScores(t *testing.T) {
	svc := newTestService(t)

	in := decodeInput(t, `{"frames":[[10],[7,3],[9,0]],"frameScores":[9]}`)
	game, err := svc.SaveGame(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, []int{9}, game.FrameScores)
	require.Equal(t, 9, game.TotalScore)
}

func TestGameService_SaveGame_EditKeepsDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	date := int64(1_600_000_000_000)
	first, err := svc.SaveGame(ctx, SaveGameInput{GameID: "1600000000000_x", Date: &date, Frames: domain.RawFrames{domain.LegacyFrame{3, 4}}})
	require.NoError(t, err)

	edited, err := svc.SaveGame(ctx, SaveGameInput{GameID: first.GameID, Frames: domain.RawFrames{domain.LegacyFrame{3, 7}}})
	require.NoError(t, err)
	require.Equal(t, first.GameID, edited.GameID)
	require.Equal(t, date, edited.Date)

	games, err := svc.ListGames(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, games, 1)
}

func TestGameService_SaveGame_Rejects(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SaveGame(context.Background(), decodeInput(t, `{"frames":[[10,5]]}`))
	require.ErrorIs(t, err, scoring.ErrInvalidFrame)

	_, err = svc.SaveGame(context.Background(), decodeInput(t, `{"frames":[{"throws":[{"value":"nine"}]}]}`))
	require.ErrorIs(t, err, scoring.ErrGameTransformFailed)

	games, err := svc.ListGames(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Empty(t, games)
}

func TestGameService_ImportAndGroup(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	a, b := "LeagueA", "LeagueB"
	dates := []int64{1000, 3000, 2000, 4000}
	leagues := []*string{&a, &b, &a, nil}

	inputs := make([]SaveGameInput, len(dates))
	for i := range inputs {
		inputs[i] = SaveGameInput{
			Date:       &dates[i],
			League:     leagues[i],
			Frames:     domain.RawFrames{domain.LegacyFrame{9, 1}, domain.LegacyFrame{10}},
			Balls:      []string{"urethane"},
			IsPractice: leagues[i] == nil,
		}
	}

	imported, err := svc.ImportGames(ctx, inputs)
	require.NoError(t, err)
	require.Len(t, imported, 4)
	require.Equal(t, []int{20}, imported[0].FrameScores)

	desc, err := svc.ListGames(ctx, ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []int64{4000, 3000, 2000, 1000}, gameDates(desc))

	asc, err := svc.ListGames(ctx, ListOptions{Ascending: true, League: "LeagueA"})
	require.NoError(t, err)
	require.Equal(t, []int64{1000, 2000}, gameDates(asc))

	groups, err := svc.GroupByLeague(ctx, false)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "LeagueA", groups[0].League)
	require.Len(t, groups[0].Games, 2)

	groups, err = svc.GroupByLeague(ctx, true)
	require.NoError(t, err)
	require.Len(t, groups, 3)
}

func TestGameService_ImportIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.ImportGames(ctx, []SaveGameInput{
		{Frames: domain.RawFrames{domain.LegacyFrame{3, 4}}},
		{Frames: domain.RawFrames{domain.LegacyFrame{8, 8}}},
	})
	require.ErrorIs(t, err, scoring.ErrInvalidFrame)
	require.ErrorContains(t, err, "game 2")

	games, err := svc.ListGames(ctx, ListOptions{})
	require.NoError(t, err)
	require.Empty(t, games)

	_, err = svc.ImportGames(ctx, nil)
	require.ErrorIs(t, err, ErrEmptyImport)
}

func TestGameService_Scoreboard(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	in := decodeInput(t, `{"frames":[[7,3],[0,10],[10],[],[],[],[],[],[],[]]}`)
	game, err := svc.SaveGame(ctx, in)
	require.NoError(t, err)

	board, err := svc.Scoreboard(ctx, game.GameID)
	require.NoError(t, err)
	require.Len(t, board.Frames, 10)
	require.Equal(t, []string{"7", "/"}, board.Frames[0].Marks)
	require.Equal(t, []string{"–", "/"}, board.Frames[1].Marks)
	require.Equal(t, []string{"X"}, board.Frames[2].Marks)
	require.Equal(t, 10, *board.Frames[0].Score)
	require.Equal(t, 30, *board.Frames[1].Score)
	require.Nil(t, board.Frames[2].Score)
	require.True(t, board.IsClean)
	require.False(t, board.IsPerfect)

	_, err = svc.Scoreboard(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrGameNotFound)
}

func TestGameService_ParseThrow(t *testing.T) {
	svc := newTestService(t)

	v, err := svc.ParseThrow(ParseThrowInput{Token: "/", FrameIndex: 0, ThrowIndex: 1, Frames: [][]int{{7}}})
	require.NoError(t, err)
	require.Equal(t, 3, v)

	_, err = svc.ParseThrow(ParseThrowInput{Token: "12", FrameIndex: 0})
	require.ErrorIs(t, err, ErrInvalidThrow)

	_, err = svc.ParseThrow(ParseThrowInput{Token: "?", FrameIndex: 0})
	require.ErrorIs(t, err, scoring.ErrNotANumber)

	_, err = svc.ParseThrow(ParseThrowInput{Token: "X", FrameIndex: 10})
	require.ErrorIs(t, err, ErrInvalidThrow)

	for _, throwIndex := range []int{-1, 3, 1 << 62} {
		_, err = svc.ParseThrow(ParseThrowInput{Token: "/", FrameIndex: 9, ThrowIndex: throwIndex})
		require.ErrorIs(t, err, ErrInvalidThrow, "throw index %d", throwIndex)
	}
}

func TestGameService_DeleteGame(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	game, err := svc.SaveGame(ctx, SaveGameInput{Frames: domain.RawFrames{domain.LegacyFrame{1, 2}}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGame(ctx, game.GameID))
	require.ErrorIs(t, svc.DeleteGame(ctx, game.GameID), repository.ErrGameNotFound)
}

func gameDates(games []domain.Game) []int64 {
	out := make([]int64, len(games))
	for i, g := range games {
		out[i] = g.Date
	}
	return out
}
