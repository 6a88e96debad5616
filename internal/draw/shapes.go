package draw

import "math"

// DrawLine draws a line between two logical points using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, color Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1, color)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillEllipse fills the axis-aligned ellipse centred on (cx, cy) with
// logical radii rx and ry. Pixels are tested at their centres.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, color Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	prx, pry := rx*c.scaleX, ry*c.scaleY

	yStart := int(math.Floor(pcy - pry))
	yEnd := int(math.Ceil(pcy + pry))
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - pcy) / pry
		if dy*dy > 1 {
			continue
		}
		half := prx * math.Sqrt(1-dy*dy)
		xStart := int(math.Ceil(pcx - half - 0.5))
		xEnd := int(math.Floor(pcx + half - 0.5))
		for x := xStart; x <= xEnd; x++ {
			c.setPixel(x, y, color)
		}
	}
}
