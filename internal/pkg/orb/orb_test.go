package orb_test

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"shopsecure/internal/pkg/orb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// texture paints random overlapping rectangles over light noise, which gives
// plenty of corners with distinct neighbourhoods.
func texture(seed uint64, w, h int) *image.RGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 128
		if i%4 == 3 {
			img.Pix[i] = 255
		}
	}

	for range 300 {
		x0, y0 := rng.IntN(w), rng.IntN(h)
		x1, y1 := min(w, x0+5+rng.IntN(60)), min(h, y0+5+rng.IntN(60))
		c := color.RGBA{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256)), A: 255}
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}

	for i := range img.Pix {
		if i%4 == 3 {
			continue
		}
		v := int(img.Pix[i]) + rng.IntN(17) - 8
		img.Pix[i] = uint8(max(0, min(255, v)))
	}
	return img
}

func uniform(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	return img
}

func TestDetector_Detect(t *testing.T) {
	d := orb.NewDetector(orb.DefaultOptions())

	t.Run("uniform image has no features", func(t *testing.T) {
		assert.Empty(t, d.Detect(uniform(300, 300)))
	})

	t.Run("textured image is capped and deterministic", func(t *testing.T) {
		img := texture(1, 640, 480)

		first := d.Detect(img)
		second := d.Detect(img)

		require.NotEmpty(t, first)
		assert.LessOrEqual(t, len(first), 1000)
		assert.Equal(t, first, second)
	})

	t.Run("respects a lower feature cap", func(t *testing.T) {
		small := orb.NewDetector(orb.Options{MaxFeatures: 50})

		features := small.Detect(texture(2, 500, 500))

		assert.LessOrEqual(t, len(features), 50)
		assert.Equal(t, 500, small.Options().Size)
	})
}

func TestMatchCrossCheck(t *testing.T) {
	t.Run("identical images match almost every feature", func(t *testing.T) {
		d := orb.NewDetector(orb.DefaultOptions())
		features := orb.Descriptors(d.Detect(texture(3, 500, 500)))
		require.NotEmpty(t, features)

		matches := orb.MatchCrossCheck(features, features)

		assert.GreaterOrEqual(t, float64(len(matches))/float64(len(features)), 0.9)
		for _, m := range matches {
			assert.Equal(t, 0, m.Distance)
		}
	})

	t.Run("only mutual nearest neighbours are kept", func(t *testing.T) {
		a := orb.Descriptor{0b0000}
		b := orb.Descriptor{0b0001}
		c := orb.Descriptor{0b1111}

		// a and b are mutually nearest; c's nearest is b, but b prefers a.
		matches := orb.MatchCrossCheck([]orb.Descriptor{a, c}, []orb.Descriptor{b})

		require.Len(t, matches, 1)
		assert.Equal(t, orb.Match{QueryIdx: 0, TrainIdx: 0, Distance: 1}, matches[0])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, orb.MatchCrossCheck(nil, []orb.Descriptor{{1}}))
	})
}

func TestHamming(t *testing.T) {
	assert.Equal(t, 0, orb.Hamming(orb.Descriptor{}, orb.Descriptor{}))
	assert.Equal(t, 256, orb.Hamming(orb.Descriptor{}, orb.Descriptor{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}))
	assert.Equal(t, 3, orb.Hamming(orb.Descriptor{0b111}, orb.Descriptor{}))
}
