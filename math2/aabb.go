package math2

// AABB is an axis-aligned bounding box in world space, used by the
// broad phase and by the public AABB query. It does not rotate; a
// rotating shape's AABB is recomputed from its current pose each time
// it moves (physics.NewAABBShape documents how AABB body shapes relate
// to rotation).
type AABB struct {
	Min, Max Vec2
}

// NewAABB returns the box spanning min..max, fixed up if the caller
// passed the corners in the wrong order.
func NewAABB(min, max Vec2) AABB {
	return AABB{Min: min.Min(max), Max: min.Max(max)}
}

// FromCircle returns the AABB of a circle of the given radius centered at c.
func FromCircle(c Vec2, radius float64) AABB {
	r := Vec2{radius, radius}
	return AABB{Min: c.Sub(r), Max: c.Add(r)}
}

// FromPoints returns the AABB enclosing every point in pts.
func FromPoints(pts []Vec2) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	box := AABB{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// Expand grows the box by margin on every side. A negative margin
// shrinks it.
func (a AABB) Expand(margin float64) AABB {
	m := Vec2{margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Overlaps returns true if a and b share any area, touching inclusive.
func (a AABB) Overlaps(b AABB) bool {
	if a.Max.X < b.Min.X || b.Max.X < a.Min.X {
		return false
	}
	if a.Max.Y < b.Min.Y || b.Max.Y < a.Min.Y {
		return false
	}
	return true
}

// Contains returns true if p lies within a, inclusive of the boundary.
func (a AABB) Contains(p Vec2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// Center returns the midpoint of the box.
func (a AABB) Center() Vec2 { return a.Min.Lerp(a.Max, 0.5) }
