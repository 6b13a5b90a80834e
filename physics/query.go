package physics

import (
	"math"

	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

// QueryAABB returns every body whose world AABB overlaps box.
func QueryAABB(b bodies, box math2.AABB) []handle.Handle {
	var out []handle.Handle
	b.Each(func(h handle.Handle, body *Body) {
		if body.WorldAABB(0).Overlaps(box) {
			out = append(out, h)
		}
	})
	return out
}

// RayHit is one raycast result.
type RayHit struct {
	Body     handle.Handle
	Point    math2.Vec2
	Normal   math2.Vec2
	Distance float64
}

// Raycast casts a ray from origin in direction dir (need not be
// normalized) out to maxDistance, returning the nearest hit, dispatched
// per shape kind.
func Raycast(b bodies, origin, dir math2.Vec2, maxDistance float64) (RayHit, bool) {
	unit := dir.Unit()
	if unit.LenSq() == 0 {
		return RayHit{}, false
	}
	best := RayHit{}
	found := false
	bestDist := maxDistance

	b.Each(func(h handle.Handle, body *Body) {
		var dist float64
		var point, normal math2.Vec2
		var hit bool
		switch body.Shape.Kind {
		case ShapeCircle:
			dist, point, normal, hit = rayCircle(origin, unit, body.Pose.Pos, body.Shape.Radius, bestDist)
		case ShapeAABB:
			verts, normals := aabbAsPolygon(body.Shape.HalfW, body.Shape.HalfH)
			worldVerts := make([]math2.Vec2, len(verts))
			for i, v := range verts {
				worldVerts[i] = body.Pose.Apply(v)
			}
			worldNormals := make([]math2.Vec2, len(normals))
			for i, n := range normals {
				worldNormals[i] = body.Pose.Rot.Rotate(n)
			}
			dist, point, normal, hit = rayPolygon(origin, unit, worldVerts, worldNormals, bestDist)
		case ShapePolygon:
			verts, normals := worldPolygon(body)
			dist, point, normal, hit = rayPolygon(origin, unit, verts, normals, bestDist)
		}
		if hit && dist < bestDist {
			bestDist = dist
			best = RayHit{Body: h, Point: point, Normal: normal, Distance: dist}
			found = true
		}
	})
	return best, found
}

// rayCircle solves the ray/circle quadratic, returning the near root.
func rayCircle(origin, dir, center math2.Vec2, radius, maxDistance float64) (float64, math2.Vec2, math2.Vec2, bool) {
	m := origin.Sub(center)
	b := m.Dot(dir)
	c := m.LenSq() - radius*radius
	if c > 0 && b > 0 {
		return 0, math2.Vec2{}, math2.Vec2{}, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, math2.Vec2{}, math2.Vec2{}, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = 0
	}
	if t > maxDistance {
		return 0, math2.Vec2{}, math2.Vec2{}, false
	}
	point := origin.Add(dir.Scale(t))
	normal := point.Sub(center).Unit()
	return t, point, normal, true
}

// rayPolygon clips the ray's parametric interval against every face's
// half-plane (the slab method, generalized from AABB to any convex
// polygon), tracking which face produced the entry t.
func rayPolygon(origin, dir math2.Vec2, verts, normals []math2.Vec2, maxDistance float64) (float64, math2.Vec2, math2.Vec2, bool) {
	tMin, tMax := 0.0, maxDistance
	hitNormal := math2.Vec2{}
	haveNormal := false

	for i, n := range normals {
		v := verts[i]
		denom := n.Dot(dir)
		num := n.Dot(v.Sub(origin))
		if math.Abs(denom) < math2.Epsilon {
			if num < 0 {
				return 0, math2.Vec2{}, math2.Vec2{}, false // parallel and outside
			}
			continue
		}
		t := num / denom
		if denom < 0 {
			if t > tMin {
				tMin = t
				hitNormal = n
				haveNormal = true
			}
		} else {
			if t < tMax {
				tMax = t
			}
		}
		if tMin > tMax {
			return 0, math2.Vec2{}, math2.Vec2{}, false
		}
	}
	if !haveNormal || tMin > maxDistance || tMin < 0 {
		return 0, math2.Vec2{}, math2.Vec2{}, false
	}
	return tMin, origin.Add(dir.Scale(tMin)), hitNormal, true
}

// GetManifolds enumerates every live cached contact manifold.
func GetManifolds(cache *ContactCache) []*Manifold {
	var out []*Manifold
	cache.Each(func(_ PairKey, m *Manifold) { out = append(out, m) })
	return out
}
