package physics

import (
	"math"

	"github.com/jsvd/rigid2d/handle"
	"github.com/jsvd/rigid2d/math2"
)

// worldPolygon returns a, b's world-space CCW vertices and outward
// normals for whichever shape kind they hold (AABB shapes are treated
// as 4-vertex polygons so the polygon clipper also handles AABB pairs).
func worldPolygon(b *Body) ([]math2.Vec2, []math2.Vec2) {
	var localVerts, localNormals []math2.Vec2
	switch b.Shape.Kind {
	case ShapeAABB:
		localVerts, localNormals = aabbAsPolygon(b.Shape.HalfW, b.Shape.HalfH)
	case ShapePolygon:
		localVerts, localNormals = b.Shape.Verts, b.Shape.Normals
	default:
		return nil, nil
	}
	verts := make([]math2.Vec2, len(localVerts))
	normals := make([]math2.Vec2, len(localNormals))
	for i, v := range localVerts {
		verts[i] = b.Pose.Apply(v)
	}
	for i, n := range localNormals {
		normals[i] = b.Pose.Rot.Rotate(n)
	}
	return verts, normals
}

// GenerateManifold runs narrow phase on one candidate pair and returns
// the resulting manifold, or nil if the shapes do not overlap. idA and
// idB are assumed already canonicalized (idA < idB) by the caller; the
// manifold's normal always points from A to B.
func GenerateManifold(idA handle.Handle, bodyA *Body, idB handle.Handle, bodyB *Body) *Manifold {
	var m *Manifold
	switch {
	case bodyA.Shape.Kind == ShapeCircle && bodyB.Shape.Kind == ShapeCircle:
		m = circleCircle(idA, bodyA, idB, bodyB)

	case bodyA.Shape.Kind == ShapeCircle:
		m = circlePolygonPair(idA, bodyA, idB, bodyB, true)
	case bodyB.Shape.Kind == ShapeCircle:
		m = circlePolygonPair(idB, bodyB, idA, bodyA, false)

	default:
		m = polygonPolygonPair(idA, bodyA, idB, bodyB)
	}
	if m != nil {
		m.localNormal = bodyA.Pose.Rot.InvRotate(m.Normal)
	}
	return m
}

// circleCircle handles circle-circle: normal along center-to-center, one point.
func circleCircle(idA handle.Handle, a *Body, idB handle.Handle, b *Body) *Manifold {
	ca, cb := a.Pose.Pos, b.Pose.Pos
	ra, rb := a.Shape.Radius, b.Shape.Radius
	delta := cb.Sub(ca)
	dist := delta.Len()
	if dist > ra+rb {
		return nil
	}
	normal := math2.Vec2{X: 1, Y: 0}
	if dist > math2.Epsilon {
		normal = delta.Scale(1.0 / dist)
	}
	penetration := (ra + rb) - dist
	worldPoint := ca.Add(normal.Scale(ra))
	return &Manifold{
		BodyA: idA, BodyB: idB, Normal: normal,
		Points: []ManifoldPoint{{
			LocalAnchorA: a.Pose.ApplyInv(worldPoint),
			LocalAnchorB: b.Pose.ApplyInv(worldPoint),
			Penetration:  penetration,
		}},
	}
}

// circlePolygonPair handles circle-AABB, circle-polygon and their
// swaps. circleIsA tells the caller whether the circle was originally
// body A, so the returned manifold's normal points A->B regardless of
// which one is the circle.
func circlePolygonPair(circleID handle.Handle, circleBody *Body, polyID handle.Handle, polyBody *Body, circleIsA bool) *Manifold {
	verts, normals := worldPolygon(polyBody)
	normal, point, penetration, hit := circlePolygon(circleBody.Pose.Pos, circleBody.Shape.Radius, verts, normals)
	if !hit {
		return nil
	}
	// normal currently points from polygon surface toward the circle.
	idA, idB := polyID, circleID
	bodyA, bodyB := polyBody, circleBody
	if circleIsA {
		idA, idB = circleID, polyID
		bodyA, bodyB = circleBody, polyBody
		normal = normal.Neg() // flip to point A(circle) -> B(polygon)
	}
	return &Manifold{
		BodyA: idA, BodyB: idB, Normal: normal,
		Points: []ManifoldPoint{{
			LocalAnchorA: bodyA.Pose.ApplyInv(point),
			LocalAnchorB: bodyB.Pose.ApplyInv(point),
			Penetration:  penetration,
		}},
	}
}

// circlePolygon returns the normal (pointing from the polygon surface
// toward the circle center), nearest world point, and penetration
// depth for a circle against a convex polygon, or hit=false if they do
// not overlap. When the circle center lies inside the polygon, the
// normal is the axis of shallowest penetration (closest face).
func circlePolygon(center math2.Vec2, radius float64, verts, normals []math2.Vec2) (normal, point math2.Vec2, penetration float64, hit bool) {
	n := len(verts)
	maxSep := math.Inf(-1)
	faceIdx := 0
	for i := 0; i < n; i++ {
		sep := normals[i].Dot(center.Sub(verts[i]))
		if sep > maxSep {
			maxSep = sep
			faceIdx = i
		}
	}
	if maxSep > radius {
		return math2.Vec2{}, math2.Vec2{}, 0, false
	}

	v1, v2 := verts[faceIdx], verts[(faceIdx+1)%n]

	if maxSep < math2.Epsilon {
		// Center is inside (or exactly on) the polygon: shallowest face wins.
		normal = normals[faceIdx]
		point = center.Sub(normal.Scale(maxSep))
		penetration = radius - maxSep
		return normal, point, penetration, true
	}

	u1 := center.Sub(v1).Dot(v2.Sub(v1))
	u2 := center.Sub(v2).Dot(v1.Sub(v2))

	switch {
	case u1 <= 0:
		d := center.Dist(v1)
		if d > radius {
			return math2.Vec2{}, math2.Vec2{}, 0, false
		}
		normal = center.Sub(v1).Unit()
		point = v1
		penetration = radius - d
	case u2 <= 0:
		d := center.Dist(v2)
		if d > radius {
			return math2.Vec2{}, math2.Vec2{}, 0, false
		}
		normal = center.Sub(v2).Unit()
		point = v2
		penetration = radius - d
	default:
		edge := v2.Sub(v1)
		t := center.Sub(v1).Dot(edge) / edge.LenSq()
		proj := v1.Add(edge.Scale(t))
		d := center.Dist(proj)
		if d > radius {
			return math2.Vec2{}, math2.Vec2{}, 0, false
		}
		normal = normals[faceIdx]
		point = proj
		penetration = radius - d
	}
	return normal, point, penetration, true
}

// polygonPolygonPair handles AABB-AABB, AABB-polygon and
// polygon-polygon by treating every box as a 4-vertex polygon and
// running Separating Axis Theorem plus Sutherland-Hodgman clipping.
func polygonPolygonPair(idA handle.Handle, a *Body, idB handle.Handle, b *Body) *Manifold {
	vertsA, normalsA := worldPolygon(a)
	vertsB, normalsB := worldPolygon(b)

	sepA, faceA := maxSeparation(vertsA, normalsA, vertsB)
	if sepA > 0 {
		return nil
	}
	sepB, faceB := maxSeparation(vertsB, normalsB, vertsA)
	if sepB > 0 {
		return nil
	}

	var refVerts, refNormals, incVerts, incNormals []math2.Vec2
	var refFace int
	flip := false
	const tol = 0.95
	const slopTol = 0.01
	if sepB > sepA*tol+slopTol {
		refVerts, refNormals, refFace = vertsB, normalsB, faceB
		incVerts, incNormals = vertsA, normalsA
		flip = true
	} else {
		refVerts, refNormals, refFace = vertsA, normalsA, faceA
		incVerts, incNormals = vertsB, normalsB
	}

	refNormal := refNormals[refFace]
	incEdgeStart, incEdgeEnd := findIncidentEdge(refNormal, incVerts, incNormals)

	rv1 := refVerts[refFace]
	rv2 := refVerts[(refFace+1)%len(refVerts)]
	tangent := rv2.Sub(rv1).Unit()

	// Clip the incident edge against the two side planes of the
	// reference face (classic Sutherland-Hodgman with two half-planes).
	points := []math2.Vec2{incEdgeStart, incEdgeEnd}
	points, ok := clipSegment(points, tangent.Neg(), -tangent.Dot(rv1))
	if !ok || len(points) < 2 {
		return nil
	}
	points, ok = clipSegment(points, tangent, tangent.Dot(rv2))
	if !ok || len(points) < 2 {
		return nil
	}

	var out []ManifoldPoint
	var worldPts []math2.Vec2
	for _, p := range points {
		sep := refNormal.Dot(p.Sub(rv1))
		if sep > slopTol {
			continue
		}
		worldPts = append(worldPts, p)
		out = append(out, ManifoldPoint{Penetration: -sep})
	}
	if len(out) == 0 {
		return nil
	}

	normal := refNormal
	if flip {
		normal = normal.Neg()
	}
	for i := range out {
		out[i].LocalAnchorA = a.Pose.ApplyInv(worldPts[i])
		out[i].LocalAnchorB = b.Pose.ApplyInv(worldPts[i])
	}
	return &Manifold{BodyA: idA, BodyB: idB, Normal: normal, Points: out}
}

// maxSeparation finds, among verts/normals' own face normals, the
// greatest separation of polygon "other" from polygon verts/normals,
// the best candidate separating axis contributed by this side.
func maxSeparation(verts, normals []math2.Vec2, other []math2.Vec2) (best float64, bestFace int) {
	best = math.Inf(-1)
	for i, n := range normals {
		support := supportPoint(other, n.Neg())
		sep := n.Dot(support.Sub(verts[i]))
		if sep > best {
			best = sep
			bestFace = i
		}
	}
	return best, bestFace
}

// supportPoint returns the vertex of verts furthest along dir.
func supportPoint(verts []math2.Vec2, dir math2.Vec2) math2.Vec2 {
	best := verts[0]
	bestDot := best.Dot(dir)
	for _, v := range verts[1:] {
		d := v.Dot(dir)
		if d > bestDot {
			bestDot = d
			best = v
		}
	}
	return best
}

// findIncidentEdge returns the edge of the incident polygon whose
// normal is most anti-parallel to the reference normal.
func findIncidentEdge(refNormal math2.Vec2, verts, normals []math2.Vec2) (math2.Vec2, math2.Vec2) {
	best := 0
	bestDot := math.Inf(1)
	for i, n := range normals {
		d := refNormal.Dot(n)
		if d < bestDot {
			bestDot = d
			best = i
		}
	}
	return verts[best], verts[(best+1)%len(verts)]
}

// clipSegment clips the 2-point segment against the half-plane
// {p : normal·p <= offset}, returning the (up to 2) surviving points.
func clipSegment(points []math2.Vec2, normal math2.Vec2, offset float64) ([]math2.Vec2, bool) {
	var out []math2.Vec2
	d0 := normal.Dot(points[0]) - offset
	d1 := normal.Dot(points[1]) - offset
	if d0 <= 0 {
		out = append(out, points[0])
	}
	if d1 <= 0 {
		out = append(out, points[1])
	}
	if (d0 < 0 && d1 > 0) || (d0 > 0 && d1 < 0) {
		t := d0 / (d0 - d1)
		out = append(out, points[0].Lerp(points[1], t))
	}
	return out, len(out) >= 1
}
