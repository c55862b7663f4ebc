// Command hyperchess drives the move-generation engine from the terminal:
// it parses a layout description, lists legal or raw candidate moves, plays
// scripted move sequences, and prints per-team move counts.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"hyperchess/internal/game"
	"hyperchess/internal/notation"
)

func main() {
	// .env values back the flag env fallbacks during development.
	_ = godotenv.Load()

	root := &cli.Command{
		Name:  "hyperchess",
		Usage: "multi-axis board-game move generation",
		Commands: []*cli.Command{
			showCommand(),
			movesCommand(),
			playCommand(),
			countCommand(),
		},
	}
	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func layoutFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "layout",
		Value:   notation.DefaultLayout,
		Usage:   "board layout string",
		Sources: cli.EnvVars("HYPERCHESS_LAYOUT"),
	}
}

func buildEngine(layout string) (*game.Engine, error) {
	cfg, err := notation.ParseLayout(layout)
	if err != nil {
		return nil, err
	}
	return game.New(cfg)
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "print the position as a layout string and JSON state",
		Flags: []cli.Flag{layoutFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			eng, err := buildEngine(cmd.String("layout"))
			if err != nil {
				return err
			}
			state := eng.State()
			fmt.Println(notation.FormatLayout(state))
			out, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func movesCommand() *cli.Command {
	return &cli.Command{
		Name:  "moves",
		Usage: "list moves for an origin square or a whole team",
		Flags: []cli.Flag{
			layoutFlag(),
			&cli.StringFlag{Name: "at", Usage: "origin coordinate x,y,z,w"},
			&cli.StringFlag{Name: "team", Value: "0", Usage: "team number (used when --at is absent)"},
			&cli.BoolFlag{Name: "candidates", Usage: "skip the king-safety filter"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			eng, err := buildEngine(cmd.String("layout"))
			if err != nil {
				return err
			}

			var moves []game.Move
			if at := cmd.String("at"); at != "" {
				origin := notation.ParseCoord(at)
				if cmd.Bool("candidates") {
					moves, err = eng.CandidateMovesAt(origin)
				} else {
					moves, err = eng.LegalMovesAt(origin)
				}
			} else {
				team, convErr := strconv.Atoi(cmd.String("team"))
				if convErr != nil {
					return convErr
				}
				if cmd.Bool("candidates") {
					moves, err = eng.CandidateMovesForTeam(game.Team(team))
				} else {
					moves, err = eng.LegalMovesForTeam(game.Team(team))
				}
			}
			if err != nil {
				return err
			}

			for _, m := range moves {
				fmt.Println(notation.FormatMove(m))
			}
			fmt.Printf("%d moves\n", len(moves))
			return nil
		},
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "apply a sequence of moves, validating each",
		ArgsUsage: "move [move ...]  (each move is from>to)",
		Flags:     []cli.Flag{layoutFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			eng, err := buildEngine(cmd.String("layout"))
			if err != nil {
				return err
			}
			for _, raw := range cmd.Args().Slice() {
				m, err := notation.ParseMove(raw)
				if err != nil {
					return err
				}
				ok, err := eng.TryMove(m)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("illegal move %s", raw)
				}
				log.Printf("played %s", notation.FormatMove(m))
			}
			fmt.Println(notation.FormatLayout(eng.State()))
			return nil
		},
	}
}

func countCommand() *cli.Command {
	return &cli.Command{
		Name:  "count",
		Usage: "print the legal move count for every team on the board",
		Flags: []cli.Flag{layoutFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			eng, err := buildEngine(cmd.String("layout"))
			if err != nil {
				return err
			}

			teams := map[game.Team]bool{}
			for _, entry := range eng.Occupied() {
				teams[entry.Piece.Team] = true
			}
			ordered := make([]int, 0, len(teams))
			for team := range teams {
				ordered = append(ordered, int(team))
			}
			sort.Ints(ordered)

			for _, team := range ordered {
				moves, err := eng.LegalMovesForTeam(game.Team(team))
				if err != nil {
					return err
				}
				fmt.Printf("team %d: %d moves\n", team, len(moves))
			}
			return nil
		},
	}
}
