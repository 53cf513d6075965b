package db

import (
	"context"
)

const countGames = `-- name: CountGames :one
SELECT COUNT(*) FROM games
`

func (q *Queries) CountGames(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countGames)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteGame = `-- name: DeleteGame :execrows
DELETE FROM games WHERE game_id = ?
`

func (q *Queries) DeleteGame(ctx context.Context, gameID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteGame, gameID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getGame = `-- name: GetGame :one
SELECT game_id, date, frames, frame_scores, total_score, is_practice, is_series,
       series_id, note, league, is_pin_mode, patterns, balls, is_clean, is_perfect,
       created_at, updated_at
FROM games
WHERE game_id = ?
`

func (q *Queries) GetGame(ctx context.Context, gameID string) (Game, error) {
	row := q.db.QueryRowContext(ctx, getGame, gameID)
	var i Game
	err := row.Scan(
		&i.GameID,
		&i.Date,
		&i.Frames,
		&i.FrameScores,
		&i.TotalScore,
		&i.IsPractice,
		&i.IsSeries,
		&i.SeriesID,
		&i.Note,
		&i.League,
		&i.IsPinMode,
		&i.Patterns,
		&i.Balls,
		&i.IsClean,
		&i.IsPerfect,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listGames = `-- name: ListGames :many
SELECT game_id, date, frames, frame_scores, total_score, is_practice, is_series,
       series_id, note, league, is_pin_mode, patterns, balls, is_clean, is_perfect,
       created_at, updated_at
FROM games
ORDER BY date DESC, game_id
`

func (q *Queries) ListGames(ctx context.Context) ([]Game, error) {
	rows, err := q.db.QueryContext(ctx, listGames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Game
	for rows.Next() {
		var i Game
		if err := rows.Scan(
			&i.GameID,
			&i.Date,
			&i.Frames,
			&i.FrameScores,
			&i.TotalScore,
			&i.IsPractice,
			&i.IsSeries,
			&i.SeriesID,
			&i.Note,
			&i.League,
			&i.IsPinMode,
			&i.Patterns,
			&i.Balls,
			&i.IsClean,
			&i.IsPerfect,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listGamesByLeague = `-- name: ListGamesByLeague :many
SELECT game_id, date, frames, frame_scores, total_score, is_practice, is_series,
       series_id, note, league, is_pin_mode, patterns, balls, is_clean, is_perfect,
       created_at, updated_at
FROM games
WHERE league = ?
ORDER BY date DESC, game_id
`

func (q *Queries) ListGamesByLeague(ctx context.Context, league *string) ([]Game, error) {
	rows, err := q.db.QueryContext(ctx, listGamesByLeague, league)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Game
	for rows.Next() {
		var i Game
		if err := rows.Scan(
			&i.GameID,
			&i.Date,
			&i.Frames,
			&i.FrameScores,
			&i.TotalScore,
			&i.IsPractice,
			&i.IsSeries,
			&i.SeriesID,
			&i.Note,
			&i.League,
			&i.IsPinMode,
			&i.Patterns,
			&i.Balls,
			&i.IsClean,
			&i.IsPerfect,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertGame = `-- name: UpsertGame :exec
INSERT INTO games (
    game_id, date, frames, frame_scores, total_score, is_practice, is_series,
    series_id, note, league, is_pin_mode, patterns, balls, is_clean, is_perfect,
    created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (game_id) DO UPDATE SET
    date = excluded.date,
    frames = excluded.frames,
    frame_scores = excluded.frame_scores,
    total_score = excluded.total_score,
    is_practice = excluded.is_practice,
    is_series = excluded.is_series,
    series_id = excluded.series_id,
    note = excluded.note,
    league = excluded.league,
    is_pin_mode = excluded.is_pin_mode,
    patterns = excluded.patterns,
    balls = excluded.balls,
    is_clean = excluded.is_clean,
    is_perfect = excluded.is_perfect,
    updated_at = excluded.updated_at
`

type UpsertGameParams struct {
	GameID      string
	Date        int64
	Frames      string
	FrameScores string
	TotalScore  int64
	IsPractice  bool
	IsSeries    bool
	SeriesID    *string
	Note        *string
	League      *string
	IsPinMode   bool
	Patterns    string
	Balls       *string
	IsClean     bool
	IsPerfect   bool
	CreatedAt   int64
	UpdatedAt   int64
}

func (q *Queries) UpsertGame(ctx context.Context, arg UpsertGameParams) error {
	_, err := q.db.ExecContext(ctx, upsertGame,
		arg.GameID,
		arg.Date,
		arg.Frames,
		arg.FrameScores,
		arg.TotalScore,
		arg.IsPractice,
		arg.IsSeries,
		arg.SeriesID,
		arg.Note,
		arg.League,
		arg.IsPinMode,
		arg.Patterns,
		arg.Balls,
		arg.IsClean,
		arg.IsPerfect,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
