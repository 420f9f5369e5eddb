package worldmap

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OBB is an oriented bounding rectangle in the XZ plane.
type OBB struct {
	Center      mgl32.Vec2
	Axes        [2]mgl32.Vec2 // unit-length local axes
	HalfLengths [2]float32
}

// AxisAlignedOBB builds an OBB aligned with the world axes.
func AxisAlignedOBB(center mgl32.Vec2, halfX, halfZ float32) OBB {
	return OBB{
		Center:      center,
		Axes:        [2]mgl32.Vec2{{1, 0}, {0, 1}},
		HalfLengths: [2]float32{halfX, halfZ},
	}
}

// Corners returns the four corners of the OBB.
func (o OBB) Corners() [4]mgl32.Vec2 {
	ex := o.Axes[0].Mul(o.HalfLengths[0])
	ez := o.Axes[1].Mul(o.HalfLengths[1])
	return [4]mgl32.Vec2{
		o.Center.Add(ex).Add(ez),
		o.Center.Sub(ex).Add(ez),
		o.Center.Sub(ex).Sub(ez),
		o.Center.Add(ex).Sub(ez),
	}
}

// project returns the min/max of the corners projected onto a unit axis.
func project(corners [4]mgl32.Vec2, axis mgl32.Vec2) (float32, float32) {
	lo := corners[0].Dot(axis)
	hi := lo
	for _, c := range corners[1:] {
		d := c.Dot(axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

// quadsOverlap is a separating-axis test between two convex quads.
func quadsOverlap(a, b [4]mgl32.Vec2, axes []mgl32.Vec2) bool {
	for _, axis := range axes {
		aLo, aHi := project(a, axis)
		bLo, bHi := project(b, axis)
		if aHi < bLo || bHi < aLo {
			return false
		}
	}
	return true
}

// TilesUnderOBB returns descriptors for every tile whose bounds overlap the
// oriented rectangle.
func TilesUnderOBB(res Resolution, mapPos mgl32.Vec3, obb OBB) []TileDesc {
	corners := obb.Corners()

	minX, maxX := corners[0].X(), corners[0].X()
	minZ, maxZ := corners[0].Y(), corners[0].Y()
	for _, c := range corners[1:] {
		minX = min(minX, c.X())
		maxX = max(maxX, c.X())
		minZ = min(minZ, c.Y())
		maxZ = max(maxZ, c.Y())
	}

	axes := []mgl32.Vec2{{1, 0}, {0, 1}, obb.Axes[0], obb.Axes[1]}

	var out []TileDesc
	// Remember: X decreases with column, so the max-X corner is the lowest column.
	start, ok := DescForPoint2D(res, mapPos, clampToMap(res, mapPos, mgl32.Vec2{maxX, minZ}))
	if !ok {
		return nil
	}
	cols := int(math.Ceil(float64((maxX-minX)/TileXDim))) + 1
	rows := int(math.Ceil(float64((maxZ-minZ)/TileZDim))) + 1

	for dr := 0; dr <= rows; dr++ {
		for dc := 0; dc <= cols; dc++ {
			td, ok := RelativeDesc(res, start, dc, dr)
			if !ok {
				continue
			}
			tb := TileBounds(res, mapPos, td)
			if quadsOverlap(tb.Corners(), corners, axes) {
				out = append(out, td)
			}
		}
	}
	return out
}

// TilesUnderCircle returns descriptors for every tile whose bounds intersect
// the disc at center with the given radius.
func TilesUnderCircle(res Resolution, center mgl32.Vec2, radius float32, mapPos mgl32.Vec3) []TileDesc {
	start, ok := DescForPoint2D(res, mapPos,
		clampToMap(res, mapPos, mgl32.Vec2{center.X() + radius, center.Y() - radius}))
	if !ok {
		return nil
	}
	span := int(math.Ceil(float64(2*radius/TileXDim))) + 1

	var out []TileDesc
	for dr := 0; dr <= span; dr++ {
		for dc := 0; dc <= span; dc++ {
			td, ok := RelativeDesc(res, start, dc, dr)
			if !ok {
				continue
			}
			if circleIntersectsBox(center, radius, TileBounds(res, mapPos, td)) {
				out = append(out, td)
			}
		}
	}
	return out
}

func circleIntersectsBox(center mgl32.Vec2, radius float32, b Box) bool {
	// Closest point on the box to the circle center.
	cx := clamp(center.X(), b.X-b.Width, b.X)
	cz := clamp(center.Y(), b.Z, b.Z+b.Height)
	dx := center.X() - cx
	dz := center.Y() - cz
	return dx*dx+dz*dz <= radius*radius
}

func clampToMap(res Resolution, mapPos mgl32.Vec3, p mgl32.Vec2) mgl32.Vec2 {
	const eps = 1.0 / 1024
	mapW := float32(res.ChunksW) * res.ChunkXDim()
	mapH := float32(res.ChunksH) * res.ChunkZDim()
	return mgl32.Vec2{
		clamp(p.X(), mapPos.X()-mapW+eps, mapPos.X()-eps),
		clamp(p.Y(), mapPos.Z()+eps, mapPos.Z()+mapH-eps),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
