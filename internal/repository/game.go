package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bowling-tracker/internal/constants"
	"bowling-tracker/internal/db"
	"bowling-tracker/internal/domain"
	"bowling-tracker/internal/scoring"

	"github.com/rs/zerolog"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
	now     func() time.Time
}

func NewGameRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *GameRepository {
	return &GameRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
		now:     time.Now,
	}
}

func (r *GameRepository) Upsert(ctx context.Context, game *domain.Game) error {
	params, err := toParams(game, r.now())
	if err != nil {
		return err
	}
	if err := r.queries.UpsertGame(ctx, params); err != nil {
		return fmt.Errorf("failed to upsert game %s: %w", game.GameID, err)
	}
	return nil
}

func (r *GameRepository) UpsertBatch(ctx context.Context, games []domain.Game) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := r.now()

	for i := 0; i < len(games); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(games))

		for _, game := range games[i:end] {
			params, err := toParams(&game, now)
			if err != nil {
				return err
			}
			if err := qtx.UpsertGame(ctx, params); err != nil {
				return fmt.Errorf("failed to upsert game %s: %w", game.GameID, err)
			}
		}

		r.logger.Debug().Int("batch_start", i).Int("batch_end", end).Msg("game batch written")
	}

	return tx.Commit()
}

func (r *GameRepository) Get(ctx context.Context, gameID string) (*domain.Game, error) {
	row, err := r.queries.GetGame(ctx, gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if err != nil {
		return nil, err
	}

	game, err := fromRow(row)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *GameRepository) List(ctx context.Context) ([]domain.Game, error) {
	rows, err := r.queries.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func (r *GameRepository) ListByLeague(ctx context.Context, league string) ([]domain.Game, error) {
	rows, err := r.queries.ListGamesByLeague(ctx, &league)
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func (r *GameRepository) Delete(ctx context.Context, gameID string) error {
	n, err := r.queries.DeleteGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game %s: %w", gameID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return nil
}

func (r *GameRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountGames(ctx)
}

func toParams(game *domain.Game, now time.Time) (db.UpsertGameParams, error) {
	frames, err := json.Marshal(game.Frames)
	if err != nil {
		return db.UpsertGameParams{}, fmt.Errorf("failed to encode frames for game %s: %w", game.GameID, err)
	}
	frameScores, err := json.Marshal(game.FrameScores)
	if err != nil {
		return db.UpsertGameParams{}, fmt.Errorf("failed to encode frame scores for game %s: %w", game.GameID, err)
	}
	patterns, err := json.Marshal(game.Patterns)
	if err != nil {
		return db.UpsertGameParams{}, fmt.Errorf("failed to encode patterns for game %s: %w", game.GameID, err)
	}

	var balls *string
	if game.Balls != nil {
		encoded, err := json.Marshal(game.Balls)
		if err != nil {
			return db.UpsertGameParams{}, fmt.Errorf("failed to encode balls for game %s: %w", game.GameID, err)
		}
		s := string(encoded)
		balls = &s
	}

	return db.UpsertGameParams{
		GameID:      game.GameID,
		Date:        game.Date,
		Frames:      string(frames),
		FrameScores: string(frameScores),
		TotalScore:  int64(game.TotalScore),
		IsPractice:  game.IsPractice,
		IsSeries:    game.IsSeries,
		SeriesID:    game.SeriesID,
		Note:        game.Note,
		League:      game.League,
		IsPinMode:   game.IsPinMode,
		Patterns:    string(patterns),
		Balls:       balls,
		IsClean:     game.IsClean,
		IsPerfect:   game.IsPerfect,
		CreatedAt:   now.UnixMilli(),
		UpdatedAt:   now.UnixMilli(),
	}, nil
}

func fromRows(rows []db.Game) ([]domain.Game, error) {
	games := make([]domain.Game, len(rows))
	for i, row := range rows {
		game, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		games[i] = game
	}
	return games, nil
}

// fromRow upgrades stored frames through the normalizer, so rows written in
// the legacy flat-array shape come back canonical.
func fromRow(row db.Game) (domain.Game, error) {
	game := domain.Game{
		GameID:     row.GameID,
		Date:       row.Date,
		TotalScore: int(row.TotalScore),
		IsPractice: row.IsPractice,
		IsSeries:   row.IsSeries,
		SeriesID:   row.SeriesID,
		Note:       row.Note,
		League:     row.League,
		IsPinMode:  row.IsPinMode,
		IsClean:    row.IsClean,
		IsPerfect:  row.IsPerfect,
	}

	raw, err := domain.DecodeRawFrames([]byte(row.Frames))
	if err != nil {
		return domain.Game{}, fmt.Errorf("failed to decode frames for game %s: %w", row.GameID, err)
	}
	frames, err := scoring.NormalizeFrames(raw)
	if err != nil {
		return domain.Game{}, fmt.Errorf("failed to decode frames for game %s: %w", row.GameID, err)
	}
	game.Frames = frames

	if err := json.Unmarshal([]byte(row.FrameScores), &game.FrameScores); err != nil {
		return domain.Game{}, fmt.Errorf("failed to decode frame scores for game %s: %w", row.GameID, err)
	}
	if err := json.Unmarshal([]byte(row.Patterns), &game.Patterns); err != nil {
		return domain.Game{}, fmt.Errorf("failed to decode patterns for game %s: %w", row.GameID, err)
	}
	if row.Balls != nil {
		game.Balls = []string{}
		if err := json.Unmarshal([]byte(*row.Balls), &game.Balls); err != nil {
			return domain.Game{}, fmt.Errorf("failed to decode balls for game %s: %w", row.GameID, err)
		}
	}

	return game, nil
}
