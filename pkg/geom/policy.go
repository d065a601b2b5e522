package geom

import "math"

// Default tolerances used by the built-in policies when a field is left zero.
const (
	DefaultEpsilon = 1e-6
	DefaultPadding = 10.0
)

// Policy answers the geometric questions the rules need without knowing which
// routing discipline is in force. Implementations must be pure.
type Policy interface {
	// Snap maps a requested point onto the policy's placement grid.
	Snap(p Point) Point

	// Directions lists the admissible unit directions. A segment is admissible
	// when it is parallel to one of them, in either sense.
	Directions() []Point

	// IsCollinear reports whether b lies on the line through a with direction
	// dir, within tol.
	IsCollinear(a, b, dir Point, tol float64) bool

	// ProjectParam returns the parametric position of p along dir measured
	// from origin: 0 at origin, 1 at origin+dir.
	ProjectParam(origin, dir, p Point) float64

	// Epsilon is the coincidence tolerance.
	Epsilon() float64

	// NeighborhoodPadding is how far the influence of an edit is assumed to
	// extend beyond the touched vertices.
	NeighborhoodPadding() float64
}

// Orthogonal restricts wiring to horizontal and vertical segments.
// The zero value is usable and applies the package defaults.
type Orthogonal struct {
	// Grid is the snap pitch. Zero disables snapping.
	Grid float64
	// Eps overrides DefaultEpsilon when positive.
	Eps float64
	// Padding overrides DefaultPadding when positive.
	Padding float64
}

var orthogonalDirections = []Point{{X: 1, Y: 0}, {X: 0, Y: 1}}

// Snap rounds p to the nearest grid point.
func (o Orthogonal) Snap(p Point) Point { return snap(p, o.Grid) }

// Directions returns the two axis unit vectors.
func (Orthogonal) Directions() []Point { return orthogonalDirections }

// IsCollinear implements Policy.
func (Orthogonal) IsCollinear(a, b, dir Point, tol float64) bool { return collinear(a, b, dir, tol) }

// ProjectParam implements Policy.
func (Orthogonal) ProjectParam(origin, dir, p Point) float64 { return project(origin, dir, p) }

// Epsilon implements Policy.
func (o Orthogonal) Epsilon() float64 { return orDefault(o.Eps, DefaultEpsilon) }

// NeighborhoodPadding implements Policy.
func (o Orthogonal) NeighborhoodPadding() float64 { return orDefault(o.Padding, DefaultPadding) }

// Octilinear admits the axis directions plus both 45° diagonals, the usual
// discipline for PCB traces.
type Octilinear struct {
	// Grid is the snap pitch. Zero disables snapping.
	Grid float64
	// Eps overrides DefaultEpsilon when positive.
	Eps float64
	// Padding overrides DefaultPadding when positive.
	Padding float64
}

var octilinearDirections = []Point{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
	{X: math.Sqrt2 / 2, Y: -math.Sqrt2 / 2},
}

// Snap rounds p to the nearest grid point.
func (o Octilinear) Snap(p Point) Point { return snap(p, o.Grid) }

// Directions returns the axis and diagonal unit vectors.
func (Octilinear) Directions() []Point { return octilinearDirections }

// IsCollinear implements Policy.
func (Octilinear) IsCollinear(a, b, dir Point, tol float64) bool { return collinear(a, b, dir, tol) }

// ProjectParam implements Policy.
func (Octilinear) ProjectParam(origin, dir, p Point) float64 { return project(origin, dir, p) }

// Epsilon implements Policy.
func (o Octilinear) Epsilon() float64 { return orDefault(o.Eps, DefaultEpsilon) }

// NeighborhoodPadding implements Policy.
func (o Octilinear) NeighborhoodPadding() float64 { return orDefault(o.Padding, DefaultPadding) }

// Admissible reports whether the segment a-b runs along one of the policy's
// directions. Degenerate segments are not admissible.
func Admissible(pol Policy, a, b Point) bool {
	d := b.Sub(a)
	if d.Len() < pol.Epsilon() {
		return false
	}
	for _, dir := range pol.Directions() {
		if pol.IsCollinear(a, b, dir, pol.Epsilon()) {
			return true
		}
	}
	return false
}

// collinear measures the perpendicular distance of b from the line through a
// along dir: |cross(b-a, dir)| / |dir|.
func collinear(a, b, dir Point, tol float64) bool {
	l := dir.Len()
	if l == 0 {
		return a.Dist(b) <= tol
	}
	return math.Abs(b.Sub(a).Cross(dir))/l <= tol
}

func project(origin, dir, p Point) float64 {
	l2 := dir.Dot(dir)
	if l2 == 0 {
		return 0
	}
	return p.Sub(origin).Dot(dir) / l2
}

func snap(p Point, grid float64) Point {
	if grid <= 0 {
		return p
	}
	return Point{X: math.Round(p.X/grid) * grid, Y: math.Round(p.Y/grid) * grid}
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
