package geom

import "math"

// Point is a 2D position in world coordinates. The same type doubles as a
// direction vector where the geometry policy needs one.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p + o.
func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

// Sub returns p - o.
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Dot returns the dot product of p and o.
func (p Point) Dot(o Point) float64 { return p.X*o.X + p.Y*o.Y }

// Cross returns the z component of the 3D cross product of p and o.
func (p Point) Cross(o Point) float64 { return p.X*o.Y - p.Y*o.X }

// Len returns the Euclidean length of p as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the Euclidean distance between p and o.
func (p Point) Dist(o Point) float64 { return math.Hypot(p.X-o.X, p.Y-o.Y) }

// Near reports whether p and o are closer than eps.
func (p Point) Near(o Point, eps float64) bool { return p.Dist(o) < eps }

// Rect is an axis-aligned rectangle given by its minimum and maximum corners.
// The zero Rect is empty.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// RectOf returns the smallest Rect containing all points. With no points it
// returns the zero Rect.
func RectOf(points ...Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Empty reports whether r is the zero Rect.
func (r Rect) Empty() bool { return r == Rect{} }

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Expand grows r by pad on every side.
func (r Rect) Expand(pad float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X - pad, Y: r.Min.Y - pad},
		Max: Point{X: r.Max.X + pad, Y: r.Max.Y + pad},
	}
}

// Union returns the smallest Rect containing r and o. An empty operand is
// ignored.
func (r Rect) Union(o Rect) Rect {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	return RectOf(r.Min, r.Max, o.Min, o.Max)
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// SegmentDistance returns the distance from p to the closed segment a-b.
func SegmentDistance(p, a, b Point) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(d.Scale(t)))
}
