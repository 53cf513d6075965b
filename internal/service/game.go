package service

import (
	"context"
	"errors"
	"fmt"

	"bowling-tracker/internal/constants"
	"bowling-tracker/internal/domain"
	"bowling-tracker/internal/metrics"
	"bowling-tracker/internal/repository"
	"bowling-tracker/internal/scoring"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidThrow = errors.New("invalid throw")
	ErrTooManyGames = errors.New("too many games in import")
	ErrEmptyImport  = errors.New("import contains no games")
)

// SaveGameInput is a game as submitted by the entry screen or an import.
// Omitting frameScores and totalScore lets the service score the frames.
type SaveGameInput struct {
	GameID      string           `json:"gameId,omitempty"`
	Date        *int64           `json:"date,omitempty"`
	Frames      domain.RawFrames `json:"frames"`
	FrameScores []int            `json:"frameScores,omitempty"`
	TotalScore  *int             `json:"totalScore,omitempty"`
	IsPractice  bool             `json:"isPractice"`
	IsSeries    bool             `json:"isSeries"`
	SeriesID    *string          `json:"seriesId,omitempty"`
	Note        *string          `json:"note,omitempty"`
	League      *string          `json:"league,omitempty"`
	IsPinMode   bool             `json:"isPinMode"`
	Patterns    []string         `json:"patterns,omitempty"`
	Balls       []string         `json:"balls"`
}

type ListOptions struct {
	Ascending bool
	League    string
}

type ParseThrowInput struct {
	Token      string  `json:"token"`
	FrameIndex int     `json:"frameIndex"`
	ThrowIndex int     `json:"throwIndex"`
	Frames     [][]int `json:"frames"`
}

type ScoreboardFrame struct {
	FrameIndex int      `json:"frameIndex"`
	Marks      []string `json:"marks"`
	Score      *int     `json:"score"`
}

type Scoreboard struct {
	GameID     string            `json:"gameId"`
	Frames     []ScoreboardFrame `json:"frames"`
	TotalScore int               `json:"totalScore"`
	IsClean    bool              `json:"isClean"`
	IsPerfect  bool              `json:"isPerfect"`
}

type GameService struct {
	repo      *repository.GameRepository
	assembler *scoring.Assembler
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewGameService(repo *repository.GameRepository, assembler *scoring.Assembler, m *metrics.Metrics, logger zerolog.Logger) *GameService {
	return &GameService{repo: repo, assembler: assembler, metrics: m, logger: logger}
}

func (s *GameService) SaveGame(ctx context.Context, in SaveGameInput) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	game, err := s.build(ctx, in)
	if err != nil {
		s.logger.Warn().Err(err).Str("game_id", in.GameID).Msg("game rejected")
		return nil, err
	}

	if err := s.repo.Upsert(ctx, &game); err != nil {
		s.logger.Error().Err(err).Str("game_id", game.GameID).Msg("failed to save game")
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	s.recordSaved(game)
	s.logger.Info().
		Str("game_id", game.GameID).
		Int("total_score", game.TotalScore).
		Bool("is_clean", game.IsClean).
		Bool("is_perfect", game.IsPerfect).
		Msg("game saved")

	return &game, nil
}

func (s *GameService) ImportGames(ctx context.Context, inputs []SaveGameInput) ([]domain.Game, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyImport
	}
	if len(inputs) > constants.MaxImportGames {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyGames, len(inputs), constants.MaxImportGames)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ImportTimeout)
	defer cancel()

	games := make([]domain.Game, len(inputs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.ImportConcurrency)

	for i, in := range inputs {
		g.Go(func() error {
			game, err := s.build(gCtx, in)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			games[i] = game
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).Int("game_count", len(inputs)).Msg("import rejected")
		return nil, err
	}

	if err := s.repo.UpsertBatch(ctx, games); err != nil {
		s.logger.Error().Err(err).Int("game_count", len(games)).Msg("failed to store imported games")
		return nil, fmt.Errorf("failed to store imported games: %w", err)
	}

	for _, game := range games {
		s.recordSaved(game)
	}
	s.metrics.GamesImported.Add(float64(len(games)))
	s.logger.Info().Int("game_count", len(games)).Msg("games imported")

	return games, nil
}

func (s *GameService) GetGame(ctx context.Context, gameID string) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	game, err := s.repo.Get(ctx, gameID)
	if err != nil {
		s.logger.Debug().Err(err).Str("game_id", gameID).Msg("game lookup failed")
		return nil, err
	}
	return game, nil
}

func (s *GameService) DeleteGame(ctx context.Context, gameID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, gameID); err != nil {
		return err
	}
	s.metrics.GamesDeleted.Inc()
	s.logger.Info().Str("game_id", gameID).Msg("game deleted")
	return nil
}

func (s *GameService) CountGames(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.Count(ctx)
}

func (s *GameService) ListGames(ctx context.Context, opts ListOptions) ([]domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var (
		games []domain.Game
		err   error
	)
	if opts.League != "" {
		games, err = s.repo.ListByLeague(ctx, opts.League)
	} else {
		games, err = s.repo.List(ctx)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("league", opts.League).Msg("failed to list games")
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return scoring.SortByDate(games, opts.Ascending), nil
}

func (s *GameService) GroupByLeague(ctx context.Context, includePractice bool) ([]scoring.LeagueGroup, error) {
	games, err := s.ListGames(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	return scoring.GroupByLeague(games, includePractice), nil
}

func (s *GameService) Scoreboard(ctx context.Context, gameID string) (*Scoreboard, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	board := buildScoreboard(*game)
	return &board, nil
}

func (s *GameService) ParseThrow(in ParseThrowInput) (int, error) {
	if in.FrameIndex < 0 || in.FrameIndex >= domain.FramesPerGame {
		s.metrics.InvalidThrows.Inc()
		return 0, fmt.Errorf("%w: frame index %d", ErrInvalidThrow, in.FrameIndex)
	}
	if in.ThrowIndex < 0 || in.ThrowIndex >= domain.MaxThrows {
		s.metrics.InvalidThrows.Inc()
		return 0, fmt.Errorf("%w: throw index %d", ErrInvalidThrow, in.ThrowIndex)
	}

	value, err := scoring.ParseInputValue(in.Token, in.FrameIndex, in.ThrowIndex, in.Frames)
	if err != nil {
		s.metrics.InvalidThrows.Inc()
		return 0, err
	}
	if !scoring.IsValidThrowValue(value) {
		s.metrics.InvalidThrows.Inc()
		return 0, fmt.Errorf("%w: %d pins", ErrInvalidThrow, value)
	}
	return value, nil
}

func (s *GameService) build(ctx context.Context, in SaveGameInput) (domain.Game, error) {
	frames, err := scoring.NormalizeFrames(in.Frames)
	if err != nil {
		s.metrics.TransformFailure.Inc()
		return domain.Game{}, fmt.Errorf("%w: %w", scoring.ErrGameTransformFailed, err)
	}
	if err := scoring.ValidateFrames(frames); err != nil {
		s.metrics.InvalidThrows.Inc()
		return domain.Game{}, err
	}

	frameScores, total := scoring.ResolveScores(frames, in.FrameScores, in.TotalScore)

	date := in.Date
	if in.GameID != "" && date == nil {
		existing, err := s.repo.Get(ctx, in.GameID)
		switch {
		case err == nil:
			date = &existing.Date
		case !errors.Is(err, repository.ErrGameNotFound):
			return domain.Game{}, fmt.Errorf("failed to look up game %s: %w", in.GameID, err)
		}
	}

	game, err := s.assembler.Assemble(scoring.AssembleInput{
		Frames:         domain.RawFramesOf(frames),
		FrameScores:    frameScores,
		TotalScore:     total,
		IsPractice:     in.IsPractice,
		League:         in.League,
		IsSeries:       in.IsSeries,
		SeriesID:       in.SeriesID,
		Note:           in.Note,
		Patterns:       in.Patterns,
		Balls:          in.Balls,
		ExistingGameID: in.GameID,
		ExistingDate:   date,
		IsPinMode:      in.IsPinMode,
	})
	if err != nil {
		s.metrics.TransformFailure.Inc()
		return domain.Game{}, err
	}
	return game, nil
}

func (s *GameService) recordSaved(game domain.Game) {
	kind := "league"
	if game.LeagueName() == "" {
		kind = "practice"
	}
	s.metrics.GamesSaved.WithLabelValues(kind).Inc()
	if game.IsPerfect {
		s.metrics.GamesSaved.WithLabelValues("perfect").Inc()
	}
	if game.IsClean {
		s.metrics.GamesSaved.WithLabelValues("clean").Inc()
	}
	s.metrics.GameScores.Observe(float64(game.TotalScore))
}

func buildScoreboard(game domain.Game) Scoreboard {
	scores := game.FrameScores
	if len(scores) == 0 {
		scores = scoring.RunningScores(game.Frames)
	}

	marks := scoring.FormatFrames(game.Frames)
	frames := make([]ScoreboardFrame, len(game.Frames))
	for i, f := range game.Frames {
		frames[i] = ScoreboardFrame{FrameIndex: f.FrameIndex, Marks: marks[i]}
		if i < len(scores) {
			score := scores[i]
			frames[i].Score = &score
		}
	}

	return Scoreboard{
		GameID:     game.GameID,
		Frames:     frames,
		TotalScore: game.TotalScore,
		IsClean:    game.IsClean,
		IsPerfect:  game.IsPerfect,
	}
}
