package draw

import "math"

// DrawCircle draws a circle centered at logical (cx, cy). Because the axes
// may scale differently it is an ellipse in pixel space. Unfilled circles are
// drawn as a one-pixel ring.
func (c *Canvas) DrawCircle(cx, cy, r float64, filled bool) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx <= 0 || ry <= 0 {
		return
	}
	irx, iry := rx-1, ry-1
	if irx <= 0 || iry <= 0 {
		filled = true // Too small to have a hole
	}

	x0, x1 := int(math.Floor(pcx-rx)), int(math.Ceil(pcx+rx))
	y0, y1 := int(math.Floor(pcy-ry)), int(math.Ceil(pcy+ry))

	drawn := false
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - pcy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - pcx
			if ellipseDist(dx, dy, rx, ry) > 1 {
				continue
			}
			if !filled && ellipseDist(dx, dy, irx, iry) <= 1 {
				continue
			}
			c.setPixel(x, y)
			drawn = true
		}
	}

	// Keep sub-pixel circles visible
	if !drawn {
		c.setPixel(int(pcx), int(pcy))
	}
}

// ellipseDist is <= 1 inside the ellipse with radii rx, ry.
func ellipseDist(dx, dy, rx, ry float64) float64 {
	return (dx*dx)/(rx*rx) + (dy*dy)/(ry*ry)
}

// DrawStar draws a five-pointed star centered at logical (cx, cy) with the
// given outer radius.
func (c *Canvas) DrawStar(cx, cy, r float64, filled bool) {
	const points = 5
	inner := r * 0.45

	pts := c.BorrowPoints(points * 2)
	for i := range pts {
		radius := r
		if i%2 == 1 {
			radius = inner
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/points
		pts[i] = Point{X: cx + radius*math.Cos(angle), Y: cy + radius*math.Sin(angle)}
	}
	c.DrawPolygon(pts, filled)
}
