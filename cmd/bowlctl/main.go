package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"bowling-tracker/internal/domain"
	"bowling-tracker/internal/logger"
	"bowling-tracker/internal/scoring"
	"bowling-tracker/internal/service"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func main() {
	log := logger.SetLevel(os.Stderr, zerolog.WarnLevel)

	app := &cli.App{
		Name:  "bowlctl",
		Usage: "score and inspect bowling games offline",
		Commands: []*cli.Command{
			scoreboardCommand(),
			parseCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("bowlctl failed")
		os.Exit(1)
	}
}

func scoreboardCommand() *cli.Command {
	return &cli.Command{
		Name:      "scoreboard",
		Usage:     "print the scoreboard of a game file (JSON or YAML)",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("scoreboard takes exactly one FILE", 2)
			}
			path := c.Args().First()

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			in, err := decodeGameFile(data, filepath.Ext(path))
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", path, err)
			}
			game, err := scoreGame(in)
			if err != nil {
				return err
			}
			return renderScoreboard(c.App.Writer, game)
		},
	}
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "convert an entry token (X, /, digits) into a pin count",
		ArgsUsage: "TOKEN",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "frame", Value: 1, Usage: "frame number, 1-10"},
			&cli.IntFlag{Name: "throw", Value: 1, Usage: "throw number within the frame, 1-3"},
			&cli.StringFlag{Name: "prior", Usage: "comma separated pin counts already recorded in the frame"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("parse takes exactly one TOKEN", 2)
			}
			prior, err := parsePrior(c.String("prior"))
			if err != nil {
				return err
			}

			value, err := parseToken(c.Args().First(), c.Int("frame"), c.Int("throw"), prior)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, value)
			return nil
		},
	}
}

// decodeGameFile accepts the same JSON body as POST /api/games. YAML is
// converted to JSON first so both formats share the frame shape detection.
func decodeGameFile(data []byte, ext string) (service.SaveGameInput, error) {
	var in service.SaveGameInput

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return in, err
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return in, err
		}
		data = converted
	}

	if err := json.Unmarshal(data, &in); err != nil {
		return in, err
	}
	return in, nil
}

func scoreGame(in service.SaveGameInput) (domain.Game, error) {
	frames, err := scoring.NormalizeFrames(in.Frames)
	if err != nil {
		return domain.Game{}, fmt.Errorf("%w: %w", scoring.ErrGameTransformFailed, err)
	}
	if err := scoring.ValidateFrames(frames); err != nil {
		return domain.Game{}, err
	}

	scores, total := scoring.ResolveScores(frames, in.FrameScores, in.TotalScore)

	return scoring.NewAssembler().Assemble(scoring.AssembleInput{
		Frames:         domain.RawFramesOf(frames),
		FrameScores:    scores,
		TotalScore:     total,
		IsPractice:     in.IsPractice,
		League:         in.League,
		IsSeries:       in.IsSeries,
		SeriesID:       in.SeriesID,
		Note:           in.Note,
		Patterns:       in.Patterns,
		Balls:          in.Balls,
		ExistingGameID: in.GameID,
		ExistingDate:   in.Date,
		IsPinMode:      in.IsPinMode,
	})
}

func renderScoreboard(w io.Writer, game domain.Game) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	marks := scoring.FormatFrames(game.Frames)

	fmt.Fprintln(tw, "FRAME\tTHROWS\tSCORE")
	for i, f := range game.Frames {
		score := ""
		if i < len(game.FrameScores) {
			score = strconv.Itoa(game.FrameScores[i])
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", f.FrameIndex, strings.Join(marks[i], " "), score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "total: %d  clean: %t  perfect: %t\n", game.TotalScore, game.IsClean, game.IsPerfect)
	return err
}

func parsePrior(v string) ([]int, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	var prior []int
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid --prior value %q: %w", part, err)
		}
		prior = append(prior, n)
	}
	return prior, nil
}

func parseToken(token string, frame, throw int, prior []int) (int, error) {
	if frame < 1 || frame > domain.FramesPerGame {
		return 0, fmt.Errorf("%w: frame must be 1-%d", service.ErrInvalidThrow, domain.FramesPerGame)
	}
	if throw < 1 || throw > domain.MaxThrows {
		return 0, fmt.Errorf("%w: throw must be 1-%d", service.ErrInvalidThrow, domain.MaxThrows)
	}

	frames := make([][]int, domain.FramesPerGame)
	frames[frame-1] = prior

	value, err := scoring.ParseInputValue(token, frame-1, throw-1, frames)
	if err != nil {
		return 0, err
	}
	if !scoring.IsValidThrowValue(value) {
		return 0, fmt.Errorf("%w: %d pins", service.ErrInvalidThrow, value)
	}
	return value, nil
}
