// Package record captures an agent run as an animated GIF with a drawn
// cursor overlay, driven by internal/agent's checkpoint loop.
package record

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// CursorState is the state of the cursor: default, over a clickable
// element, or over a typeable one. drawCursorOnFrame draws the same arrow
// shape for every state.
type CursorState int

const (
	CursorDefault CursorState = iota
	CursorPointer
	CursorText
)

// Position is a single cursor sample: where the cursor was, what it looked
// like, and whether a click landed there.
type Position struct {
	X, Y  int
	State CursorState
	Click bool
}

// ApplyCursor draws the cursor (and a click ripple where Click is set) onto
// each frame. positions are spread evenly across the frames: with fewer
// positions than frames, frames between two positions get the cursor eased
// from one to the next; with one position per frame (as Run records them)
// each frame is drawn at its own position.
func ApplyCursor(frames []image.Image, positions []Position) []image.Image {
	if len(positions) == 0 {
		return frames
	}
	result := make([]image.Image, len(frames))
	interpolated := interpolatePositions(positions, len(frames))
	for i, frame := range frames {
		result[i] = drawCursorOnFrame(frame, interpolated[i])
	}
	return result
}

// interpolatePositions spreads positions evenly across frameCount frames
// and eases the cursor between consecutive ones.
func interpolatePositions(positions []Position, frameCount int) []Position {
	if len(positions) == 0 {
		return make([]Position, frameCount)
	}
	result := make([]Position, frameCount)
	for i := 0; i < frameCount; i++ {
		posIdx := int(float64(i) / float64(frameCount) * float64(len(positions)))
		if posIdx >= len(positions) {
			posIdx = len(positions) - 1
		}
		current := positions[posIdx]
		if posIdx < len(positions)-1 {
			next := positions[posIdx+1]
			progress := easeInOut(float64(i)/float64(frameCount)*float64(len(positions)) - float64(posIdx))
			result[i] = Position{
				X:     int(float64(current.X) + progress*(float64(next.X)-float64(current.X))),
				Y:     int(float64(current.Y) + progress*(float64(next.Y)-float64(current.Y))),
				State: current.State,
				Click: current.Click,
			}
		} else {
			result[i] = current
		}
	}
	return result
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func drawCursorOnFrame(frame image.Image, pos Position) image.Image {
	bounds := frame.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, frame, bounds.Min, draw.Src)

	if pos.X == 0 && pos.Y == 0 {
		return result
	}
	if pos.Click {
		drawClickRipple(result, pos.X, pos.Y)
	}
	drawCursor(result, pos.X, pos.Y)
	return result
}

// drawCursor rasterizes a fixed pointer-arrow shape at (x, y): a filled
// triangle-ish body with a black outline traced through a fixed point set.
func drawCursor(img *image.RGBA, x, y int) {
	outline := color.RGBA{0, 0, 0, 255}
	fill := color.RGBA{255, 255, 255, 255}

	points := []struct{ dx, dy int }{
		{0, 0}, {0, 16}, {4, 12}, {7, 18}, {10, 17}, {7, 11}, {12, 11},
	}

	for dy := 0; dy < 18; dy++ {
		for dx := 0; dx < 13; dx++ {
			if isInsideCursor(dx, dy) {
				setPixelSafe(img, x+dx, y+dy, fill)
			}
		}
	}
	for i := range points {
		p1, p2 := points[i], points[(i+1)%len(points)]
		drawLine(img, x+p1.dx, y+p1.dy, x+p2.dx, y+p2.dy, outline)
	}
}

func isInsideCursor(dx, dy int) bool {
	if dy < 0 || dy > 16 || dx < 0 {
		return false
	}
	if dy <= 11 {
		return dx <= dy*12/16
	}
	return dy <= 16 && dx <= 4
}

func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		setPixelSafe(img, x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
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

// drawClickRipple stamps a translucent ring around (x, y) so a click reads
// clearly in a still frame, not just as a one-frame flicker.
func drawClickRipple(img *image.RGBA, x, y int) {
	ripple := color.RGBA{66, 133, 244, 100}
	radius := 15
	for angle := 0.0; angle < 360; angle++ {
		rad := angle * math.Pi / 180
		px := x + int(float64(radius)*math.Cos(rad))
		py := y + int(float64(radius)*math.Sin(rad))
		setPixelSafe(img, px, py, ripple)
		setPixelSafe(img, px+1, py, ripple)
		setPixelSafe(img, px, py+1, ripple)
	}
}

func setPixelSafe(img *image.RGBA, x, y int, c color.RGBA) {
	b := img.Bounds()
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		img.Set(x, y, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
