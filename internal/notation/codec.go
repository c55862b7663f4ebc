// Package notation holds the string surfaces around the engine core: the
// compact layout grammar and the coordinate and move codecs.
package notation

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"hyperchess/internal/game"
)

// FormatCoord renders a coordinate as "x,y,z,w".
func FormatCoord(c game.Coord) string { return c.String() }

// ParseCoord parses "x,y,z,w". Missing or non-numeric components are
// coerced to 0; extra components are ignored.
func ParseCoord(s string) game.Coord {
	parts := strings.Split(s, ",")
	var vals [4]int
	for i := 0; i < len(parts) && i < 4; i++ {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[i])); err == nil {
			vals[i] = n
		}
	}
	return game.Coord{X: vals[0], Y: vals[1], Z: vals[2], W: vals[3]}
}

// FormatMove renders a move as its hops joined by '>': origin, any
// waypoints, destination.
func FormatMove(m game.Move) string {
	hops := make([]string, 0, len(m.Waypoints)+2)
	hops = append(hops, FormatCoord(m.From))
	for _, wp := range m.Waypoints {
		hops = append(hops, FormatCoord(wp))
	}
	hops = append(hops, FormatCoord(m.To))
	return strings.Join(hops, ">")
}

// ParseMove parses a '>'-separated hop list. The first hop is the origin,
// the last the destination, anything between a waypoint.
func ParseMove(s string) (game.Move, error) {
	hops := strings.Split(strings.TrimSpace(s), ">")
	if len(hops) < 2 {
		return game.Move{}, errors.Errorf("move %q needs at least origin and destination", s)
	}
	m := game.Move{From: ParseCoord(hops[0]), To: ParseCoord(hops[len(hops)-1])}
	for _, hop := range hops[1 : len(hops)-1] {
		m.Waypoints = append(m.Waypoints, ParseCoord(hop))
	}
	return m, nil
}
