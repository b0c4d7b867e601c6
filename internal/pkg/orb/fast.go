package orb

import (
	"image"
	"sort"
)

// fastArc is the minimum number of contiguous circle pixels for a FAST-9 corner.
const fastArc = 9

// circle holds the 16 Bresenham offsets of radius 3, clockwise from the top.
var circle = [16]image.Point{
	{0, -3}, {1, -3}, {2, -2}, {3, -1}, {3, 0}, {3, 1}, {2, 2}, {1, 3},
	{0, 3}, {-1, 3}, {-2, 2}, {-3, 1}, {-3, 0}, {-3, -1}, {-2, -2}, {-1, -3},
}

type corner struct {
	x, y     int
	response float64
}

// detectFAST finds FAST-9 corners at least border pixels away from the edges.
func detectFAST(img *image.Gray, threshold int) []corner {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	var corners []corner

	for y := border; y < h-border; y++ {
		for x := border; x < w-border; x++ {
			if isFASTCorner(img, x, y, threshold) {
				corners = append(corners, corner{x: x, y: y})
			}
		}
	}
	return corners
}

func isFASTCorner(img *image.Gray, x, y, threshold int) bool {
	p := int(img.Pix[y*img.Stride+x])
	hi, lo := p+threshold, p-threshold

	// Quick rejection on the four compass pixels: a 9-arc covers at least two of them.
	brighter, darker := 0, 0
	for _, i := range [4]int{0, 4, 8, 12} {
		v := at(img, x+circle[i].X, y+circle[i].Y)
		if v > hi {
			brighter++
		} else if v < lo {
			darker++
		}
	}
	if brighter < 2 && darker < 2 {
		return false
	}

	var ring [16]int
	for i, o := range circle {
		ring[i] = at(img, x+o.X, y+o.Y)
	}

	runHi, runLo := 0, 0
	for i := range 16 + fastArc - 1 {
		v := ring[i%16]
		if v > hi {
			runHi++
			runLo = 0
		} else if v < lo {
			runLo++
			runHi = 0
		} else {
			runHi, runLo = 0, 0
		}
		if runHi >= fastArc || runLo >= fastArc {
			return true
		}
	}
	return false
}

// harrisResponse computes det(M) - k*trace(M)^2 over a 7x7 window of central
// difference gradients.
func harrisResponse(img *image.Gray, x, y int) float64 {
	var sxx, syy, sxy float64
	for dy := -harrisRadius; dy <= harrisRadius; dy++ {
		for dx := -harrisRadius; dx <= harrisRadius; dx++ {
			px, py := x+dx, y+dy
			ix := float64(at(img, px+1, py) - at(img, px-1, py))
			iy := float64(at(img, px, py+1) - at(img, px, py-1))
			sxx += ix * ix
			syy += iy * iy
			sxy += ix * iy
		}
	}
	trace := sxx + syy
	return sxx*syy - sxy*sxy - harrisK*trace*trace
}

// suppressNonMax keeps corners whose response is not exceeded by a corner in
// their 3x3 neighbourhood.
func suppressNonMax(corners []corner, w, h int) []corner {
	if len(corners) == 0 {
		return corners
	}

	idx := make([]int32, w*h)
	for i := range idx {
		idx[i] = -1
	}
	for i, c := range corners {
		idx[c.y*w+c.x] = int32(i)
	}

	kept := corners[:0:0]
	for _, c := range corners {
		isMax := true
		for dy := -1; dy <= 1 && isMax; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				n := idx[(c.y+dy)*w+c.x+dx]
				if n >= 0 && corners[n].response > c.response {
					isMax = false
					break
				}
			}
		}
		if isMax {
			kept = append(kept, c)
		}
	}
	return kept
}

// sortCorners orders by descending response with a positional tie-break so the
// selection is deterministic.
func sortCorners(corners []corner) {
	sort.Slice(corners, func(i, j int) bool {
		a, b := corners[i], corners[j]
		if a.response != b.response {
			return a.response > b.response
		}
		if a.y != b.y {
			return a.y < b.y
		}
		return a.x < b.x
	})
}

func at(img *image.Gray, x, y int) int {
	return int(img.Pix[y*img.Stride+x])
}
