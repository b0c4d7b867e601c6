package orb

import (
	"image"
	"math"
	"math/rand/v2"
)

const (
	descriptorBits = 256

	// patternRadius bounds test point coordinates before rotation.
	patternRadius = 13

	// boxRadius is the half size of the smoothing box around each test point.
	boxRadius = 2

	patternSeed1 = 0x6f7262
	patternSeed2 = 0x62726965
)

// Descriptor is a 256-bit binary descriptor.
type Descriptor [descriptorBits / 64]uint64

type testPair struct {
	x1, y1, x2, y2 float64
}

// pattern is the BRIEF sampling pattern shared by every Detector.
var pattern = newPattern()

// newPattern draws point pairs from an isotropic Gaussian (sigma = 31/5) clipped
// to the patch, with a fixed seed.
func newPattern() [descriptorBits]testPair {
	rng := rand.New(rand.NewPCG(patternSeed1, patternSeed2))
	sigma := float64(2*patchRadius+1) / 5

	sample := func() float64 {
		v := math.Round(rng.NormFloat64() * sigma)
		return math.Max(-patternRadius, math.Min(patternRadius, v))
	}

	var p [descriptorBits]testPair
	for i := range p {
		for {
			t := testPair{x1: sample(), y1: sample(), x2: sample(), y2: sample()}
			if t.x1 != t.x2 || t.y1 != t.y2 {
				p[i] = t
				break
			}
		}
	}
	return p
}

// integralImage supports constant time box sums.
type integralImage struct {
	w    int
	sums []uint32
}

func newIntegralImage(img *image.Gray) integralImage {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	stride := w + 1
	sums := make([]uint32, stride*(h+1))

	for y := range h {
		var row uint32
		for x := range w {
			row += uint32(img.Pix[y*img.Stride+x])
			sums[(y+1)*stride+x+1] = sums[y*stride+x+1] + row
		}
	}
	return integralImage{w: stride, sums: sums}
}

// box returns the sum of the (2*boxRadius+1)^2 square centred on (x, y).
func (ii integralImage) box(x, y int) uint32 {
	x0, y0 := x-boxRadius, y-boxRadius
	x1, y1 := x+boxRadius+1, y+boxRadius+1
	return ii.sums[y1*ii.w+x1] - ii.sums[y0*ii.w+x1] - ii.sums[y1*ii.w+x0] + ii.sums[y0*ii.w+x0]
}

// orientation returns the angle from the keypoint to the intensity centroid of
// the circular patch around it.
func orientation(img *image.Gray, x, y int) float64 {
	var m10, m01 float64
	for dy := -patchRadius; dy <= patchRadius; dy++ {
		for dx := -patchRadius; dx <= patchRadius; dx++ {
			if dx*dx+dy*dy > patchRadius*patchRadius {
				continue
			}
			v := float64(at(img, x+dx, y+dy))
			m10 += float64(dx) * v
			m01 += float64(dy) * v
		}
	}
	return math.Atan2(m01, m10)
}

// describe evaluates the rotated test pattern at (x, y).
func describe(ii integralImage, x, y int, angle float64) Descriptor {
	sin, cos := math.Sincos(angle)

	var d Descriptor
	for i, t := range pattern {
		ax := x + int(math.Round(cos*t.x1-sin*t.y1))
		ay := y + int(math.Round(sin*t.x1+cos*t.y1))
		bx := x + int(math.Round(cos*t.x2-sin*t.y2))
		by := y + int(math.Round(sin*t.x2+cos*t.y2))

		if ii.box(ax, ay) < ii.box(bx, by) {
			d[i/64] |= 1 << (i % 64)
		}
	}
	return d
}
