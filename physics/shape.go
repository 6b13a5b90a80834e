// Package physics implements the narrow, deterministic 2D rigid-body
// core: bodies, shapes, broad and narrow phase collision, the
// constraint/contact solver, islands and sleep, and the query surface.
// It has no notion of a host, a scripting layer, or rendering; the
// handle-based façade that binds this package to a game layer lives in
// the root rigid2d package.
//
// The collision and solver pipeline takes its shape from a union-find
// island assembly, compliance-based joint math, and sequential impulse
// accumulation with Nonlinear Gauss-Seidel position correction, reduced to 2D
// and reworked around an explicit handle/world model rather than
// scene-graph-attached bodies.
package physics

import (
	"errors"
	"math"

	"github.com/jsvd/rigid2d/math2"
)

// ErrInvalidShape is returned by NewPolygonShape when the vertices do
// not describe a convex, non-degenerate polygon of an allowed size.
var ErrInvalidShape = errors.New("physics: invalid shape")

// MaxPolygonVerts is the largest convex polygon this engine accepts.
const MaxPolygonVerts = 8

// ShapeKind tags the variant held by a Shape.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeAABB
	ShapePolygon
)

// Shape is a fixed, immutable piece of geometry attached to a body.
// It is a tagged union rather than an interface so that Body can hold
// it by value and the narrow phase can switch on Kind without a type
// assertion.
type Shape struct {
	Kind ShapeKind

	Radius float64 // circle

	HalfW, HalfH float64 // aabb

	Verts   []math2.Vec2 // polygon, local space, CCW
	Normals []math2.Vec2 // polygon, outward edge normals, local space
}

// NewCircleShape returns a circle shape of the given radius.
func NewCircleShape(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: math.Abs(radius)}
}

// NewAABBShape returns an axis-aligned box shape with the given half
// extents. AABB shapes never rotate; a rotating box must use
// NewPolygonShape instead. NewBody gives an AABB body zero inverse
// inertia, so contacts never turn it; an angle or angular velocity set
// directly on the body still rotates its pose, and the narrow phase and
// raycast use that rotated pose.
func NewAABBShape(halfW, halfH float64) Shape {
	return Shape{Kind: ShapeAABB, HalfW: math.Abs(halfW), HalfH: math.Abs(halfH)}
}

// NewPolygonShape validates verts as a CCW, convex, non-degenerate
// polygon of at most MaxPolygonVerts vertices and precomputes its edge
// normals. It returns ErrInvalidShape for anything else.
func NewPolygonShape(verts []math2.Vec2) (Shape, error) {
	n := len(verts)
	if n < 3 || n > MaxPolygonVerts {
		return Shape{}, ErrInvalidShape
	}

	// Signed area must be positive for a CCW winding; also rejects the
	// fully-degenerate (zero area) case.
	area := 0.0
	for i := 0; i < n; i++ {
		a, b := verts[i], verts[(i+1)%n]
		area += a.Cross(b)
	}
	if area <= math2.Epsilon {
		return Shape{}, ErrInvalidShape
	}

	normals := make([]math2.Vec2, n)
	for i := 0; i < n; i++ {
		a, b := verts[i], verts[(i+1)%n]
		edge := b.Sub(a)
		if edge.LenSq() < math2.Epsilon {
			return Shape{}, ErrInvalidShape // coincident vertices
		}
		normals[i] = edge.Perp().Neg().Unit() // outward normal for CCW winding
	}

	// Convexity: every vertex must turn the same way (left) as we walk
	// the CCW boundary.
	for i := 0; i < n; i++ {
		prev := verts[(i-1+n)%n]
		cur := verts[i]
		next := verts[(i+1)%n]
		e1 := cur.Sub(prev)
		e2 := next.Sub(cur)
		if e1.Cross(e2) < -math2.Epsilon {
			return Shape{}, ErrInvalidShape
		}
	}

	out := make([]math2.Vec2, n)
	copy(out, verts)
	return Shape{Kind: ShapePolygon, Verts: out, Normals: normals}, nil
}

// aabbAsPolygon returns the CCW local-space vertices and outward
// normals of an AABB shape, so the narrow phase can run a single
// polygon clipping algorithm for AABB and polygon pairs alike.
func aabbAsPolygon(hw, hh float64) ([]math2.Vec2, []math2.Vec2) {
	verts := []math2.Vec2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	normals := []math2.Vec2{
		{X: 0, Y: -1},
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: -1, Y: 0},
	}
	return verts, normals
}

// localAABB returns the shape's bounding box in its own local frame
// (identity pose).
func (s Shape) localAABB() math2.AABB {
	switch s.Kind {
	case ShapeCircle:
		return math2.FromCircle(math2.Vec2{}, s.Radius)
	case ShapeAABB:
		return math2.NewAABB(math2.Vec2{X: -s.HalfW, Y: -s.HalfH}, math2.Vec2{X: s.HalfW, Y: s.HalfH})
	case ShapePolygon:
		return math2.FromPoints(s.Verts)
	}
	return math2.AABB{}
}

// worldAABB returns the shape's bounding box transformed by pose. AABB
// shapes translate but never rotate.
func (s Shape) worldAABB(pose math2.Transform) math2.AABB {
	switch s.Kind {
	case ShapeCircle:
		return math2.FromCircle(pose.Pos, s.Radius)
	case ShapeAABB:
		local := s.localAABB()
		return math2.AABB{Min: local.Min.Add(pose.Pos), Max: local.Max.Add(pose.Pos)}
	case ShapePolygon:
		pts := make([]math2.Vec2, len(s.Verts))
		for i, v := range s.Verts {
			pts[i] = pose.Apply(v)
		}
		return math2.FromPoints(pts)
	}
	return math2.AABB{}
}

// momentOfInertia returns the shape's moment of inertia about the body
// origin for the given mass, using the standard closed-form formulas:
// circle ½mr², box (1/12)m(4hw²+4hh²), polygon the area-weighted second
// moment about the polygon's centroid. No parallel-axis shift is
// applied, so for a polygon whose centroid is not at its local origin
// the value is the moment about the centroid, not about the origin.
func (s Shape) momentOfInertia(mass float64) float64 {
	switch s.Kind {
	case ShapeCircle:
		return 0.5 * mass * s.Radius * s.Radius
	case ShapeAABB:
		return mass * (4*s.HalfW*s.HalfW + 4*s.HalfH*s.HalfH) / 12.0
	case ShapePolygon:
		return polygonInertia(s.Verts, mass)
	}
	return 0
}

// polygonCentroid returns the area centroid of a convex polygon.
func polygonCentroid(verts []math2.Vec2) math2.Vec2 {
	var c math2.Vec2
	area := 0.0
	n := len(verts)
	origin := verts[0]
	for i := 1; i < n-1; i++ {
		a := verts[i].Sub(origin)
		b := verts[i+1].Sub(origin)
		cross := a.Cross(b)
		area += cross
		c = c.Add(a.Add(b).Scale(cross))
	}
	if math.Abs(area) < math2.Epsilon {
		return origin
	}
	c = c.Scale(1.0 / (3.0 * area))
	return c.Add(origin)
}

// polygonInertia computes the moment of inertia of a convex polygon of
// uniform density and the given total mass, about its own centroid.
func polygonInertia(verts []math2.Vec2, mass float64) float64 {
	n := len(verts)
	if n < 3 {
		return 0
	}
	centroid := polygonCentroid(verts)
	numer, denom := 0.0, 0.0
	for i := 0; i < n; i++ {
		a := verts[i].Sub(centroid)
		b := verts[(i+1)%n].Sub(centroid)
		cross := math.Abs(a.Cross(b))
		numer += cross * (a.Dot(a) + a.Dot(b) + b.Dot(b))
		denom += cross
	}
	if denom < math2.Epsilon {
		return 0
	}
	return mass * numer / (6.0 * denom)
}
