package game

import "fmt"

// Coord is a 4-component board coordinate. It is a value type with
// structural equality, which also makes it usable as a map key.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
	W int `json:"w"`
}

// XY builds a coordinate on the first two axes; z and w stay 0.
func XY(x, y int) Coord { return Coord{X: x, Y: y} }

func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z, W: c.W + o.W}
}

func (c Coord) Scale(n int) Coord {
	return Coord{X: c.X * n, Y: c.Y * n, Z: c.Z * n, W: c.W * n}
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", c.X, c.Y, c.Z, c.W)
}
