package scoring

import (
	"fmt"
	"slices"
	"time"

	"bowling-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	gameIDAlphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	gameIDSuffixLength = 9
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type IDGenerator interface {
	NewGameID(now time.Time) (string, error)
}

// NanoIDGenerator produces ids of the form <epoch-ms>_<base36 suffix>.
type NanoIDGenerator struct{}

func (NanoIDGenerator) NewGameID(now time.Time) (string, error) {
	suffix, err := gonanoid.Generate(gameIDAlphabet, gameIDSuffixLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate game id suffix: %w", err)
	}
	return fmt.Sprintf("%d_%s", now.UnixMilli(), suffix), nil
}

type Assembler struct {
	clock Clock
	ids   IDGenerator
}

type AssemblerOption func(*Assembler)

func WithClock(clock Clock) AssemblerOption {
	return func(a *Assembler) { a.clock = clock }
}

func WithIDGenerator(ids IDGenerator) AssemblerOption {
	return func(a *Assembler) { a.ids = ids }
}

func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		clock: ClockFunc(time.Now),
		ids:   NanoIDGenerator{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssembleInput is everything a caller knows about a game before it becomes
// a record. FrameScores and TotalScore are taken as given.
type AssembleInput struct {
	Frames         []domain.RawFrame
	FrameScores    []int
	TotalScore     int
	IsPractice     bool
	League         *string
	IsSeries       bool
	SeriesID       *string
	Note           *string
	Patterns       []string
	Balls          []string // nil when balls are not tracked
	ExistingGameID string
	ExistingDate   *int64
	IsPinMode      bool
}

// Assemble builds a Game record. Editing an existing game keeps its id and
// date. Any failure comes back wrapped in ErrGameTransformFailed.
func (a *Assembler) Assemble(in AssembleInput) (game domain.Game, err error) {
	defer func() {
		if r := recover(); r != nil {
			game = domain.Game{}
			err = fmt.Errorf("%w: panic: %v", ErrGameTransformFailed, r)
		}
	}()

	game, err = a.assemble(in)
	if err != nil {
		return domain.Game{}, fmt.Errorf("%w: %w", ErrGameTransformFailed, err)
	}
	return game, nil
}

func (a *Assembler) assemble(in AssembleInput) (domain.Game, error) {
	now := a.clock.Now()

	gameID := in.ExistingGameID
	if gameID == "" {
		id, err := a.ids.NewGameID(now)
		if err != nil {
			return domain.Game{}, err
		}
		gameID = id
	}

	date := now.UnixMilli()
	if in.ExistingDate != nil {
		date = *in.ExistingDate
	}

	frames, err := NormalizeFrames(in.Frames)
	if err != nil {
		return domain.Game{}, fmt.Errorf("failed to normalize frames: %w", err)
	}

	frameScores := slices.Clone(in.FrameScores)
	if frameScores == nil {
		frameScores = []int{}
	}

	patterns := sortedCopy(in.Patterns)
	if patterns == nil {
		patterns = []string{}
	}

	return domain.Game{
		GameID:      gameID,
		Date:        date,
		Frames:      frames,
		FrameScores: frameScores,
		TotalScore:  in.TotalScore,
		IsPractice:  in.IsPractice,
		IsSeries:    in.IsSeries,
		SeriesID:    copyString(in.SeriesID),
		Note:        copyString(in.Note),
		League:      copyString(in.League),
		IsPinMode:   in.IsPinMode,
		Patterns:    patterns,
		Balls:       sortedCopy(in.Balls),
		IsClean:     ComputeIsClean(frames),
		IsPerfect:   in.TotalScore == domain.PerfectScore,
	}, nil
}

func sortedCopy(values []string) []string {
	if values == nil {
		return nil
	}
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
