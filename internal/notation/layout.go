package notation

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"hyperchess/internal/game"
)

// DefaultLayout is the standard two-team arrangement on an 8x8x1x1 board.
const DefaultLayout = "8,8,1,1 RNBQKBNR,PPPPPPPP,8,8,8,8,pppppppp,rnbqkbnr"

// ParseLayout decodes a layout description: a size field "x,y,z,w" and a
// body where '|' separates w-layers, '/' separates z-layers, ',' separates
// rows, digits run-length empty squares, and a letter places a piece
// (uppercase team 0, lowercase team 1). Row i of a layer is y=i.
//
// Unrecognized letters are accepted; a piece with no rule entry only fails
// when moves are requested for it.
func ParseLayout(s string) (game.Config, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return game.Config{}, errors.Errorf("layout needs a size field and a body, got %d fields", len(fields))
	}
	size := ParseCoord(fields[0])
	if size.X < 1 || size.Y < 1 || size.Z < 1 || size.W < 1 {
		return game.Config{}, errors.Errorf("invalid board size %q", fields[0])
	}

	var result *multierror.Error
	var pieces []game.PlacedPiece

	wLayers := strings.Split(fields[1], "|")
	if len(wLayers) != size.W {
		result = multierror.Append(result, errors.Errorf("expected %d w-layers, got %d", size.W, len(wLayers)))
	}
	for w, wLayer := range wLayers {
		zLayers := strings.Split(wLayer, "/")
		if len(zLayers) != size.Z {
			result = multierror.Append(result, errors.Errorf("w-layer %d: expected %d z-layers, got %d", w, size.Z, len(zLayers)))
		}
		for z, zLayer := range zLayers {
			rows := strings.Split(zLayer, ",")
			if len(rows) != size.Y {
				result = multierror.Append(result, errors.Errorf("layer w=%d z=%d: expected %d rows, got %d", w, z, size.Y, len(rows)))
			}
			for y, row := range rows {
				decoded, err := decodeRow(row, size.X, y, z, w)
				if err != nil {
					result = multierror.Append(result, err)
					continue
				}
				pieces = append(pieces, decoded...)
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return game.Config{}, err
	}
	return game.Config{Size: size, Pieces: pieces}, nil
}

func decodeRow(row string, width, y, z, w int) ([]game.PlacedPiece, error) {
	var out []game.PlacedPiece
	x := 0
	run := 0
	for _, r := range row {
		switch {
		case unicode.IsDigit(r):
			run = run*10 + int(r-'0')
		case unicode.IsLetter(r):
			x += run
			run = 0
			team := game.Team(1)
			if unicode.IsUpper(r) {
				team = 0
			}
			id := game.PieceID(strings.ToUpper(string(r)))
			pos := game.Coord{X: x, Y: y, Z: z, W: w}
			out = append(out, game.PlacedPiece{Pos: pos, Piece: game.NewPiece(id, team)})
			x++
		default:
			return nil, errors.Errorf("layer w=%d z=%d row %d: unexpected %q", w, z, y, string(r))
		}
	}
	x += run
	if x != width {
		return nil, errors.Errorf("layer w=%d z=%d row %d: width %d, expected %d", w, z, y, x, width)
	}
	return out, nil
}

// FormatLayout renders a position snapshot back into the layout grammar.
// Only single-letter piece ids round-trip; team 0 renders uppercase,
// every other team lowercase.
func FormatLayout(state game.BoardState) string {
	at := make(map[game.Coord]game.PieceState, len(state.Pieces))
	for _, ps := range state.Pieces {
		at[ps.Pos] = ps
	}

	wParts := make([]string, 0, state.Size.W)
	for w := 0; w < state.Size.W; w++ {
		zParts := make([]string, 0, state.Size.Z)
		for z := 0; z < state.Size.Z; z++ {
			rows := make([]string, 0, state.Size.Y)
			for y := 0; y < state.Size.Y; y++ {
				rows = append(rows, formatRow(at, state.Size.X, y, z, w))
			}
			zParts = append(zParts, strings.Join(rows, ","))
		}
		wParts = append(wParts, strings.Join(zParts, "/"))
	}
	return FormatCoord(state.Size) + " " + strings.Join(wParts, "|")
}

func formatRow(at map[game.Coord]game.PieceState, width, y, z, w int) string {
	var b strings.Builder
	run := 0
	flush := func() {
		if run > 0 {
			b.WriteString(strconv.Itoa(run))
			run = 0
		}
	}
	for x := 0; x < width; x++ {
		ps, ok := at[game.Coord{X: x, Y: y, Z: z, W: w}]
		if !ok {
			run++
			continue
		}
		flush()
		letter := string(ps.ID)
		if ps.Team != 0 {
			letter = strings.ToLower(letter)
		}
		b.WriteString(letter)
	}
	flush()
	return b.String()
}
