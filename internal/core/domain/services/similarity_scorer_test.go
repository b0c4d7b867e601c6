package services_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"testing"

	"shopsecure/internal/core/domain/services"
	"shopsecure/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func texturedImage(seed uint64) *image.Gray {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	img := image.NewGray(image.Rect(0, 0, 500, 500))
	for i := range img.Pix {
		img.Pix[i] = 120
	}
	for range 250 {
		x0, y0 := rng.IntN(500), rng.IntN(500)
		x1, y1 := min(500, x0+8+rng.IntN(50)), min(500, y0+8+rng.IntN(50))
		c := color.Gray{Y: uint8(rng.IntN(256))}
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.SetGray(x, y, c)
			}
		}
	}
	for i := range img.Pix {
		v := int(img.Pix[i]) + rng.IntN(13) - 6
		img.Pix[i] = uint8(max(0, min(255, v)))
	}
	return img
}

func TestSimilarityScorer_Score(t *testing.T) {
	scorer := services.NewSimilarityScorer(services.DefaultSimilarityOptions())
	textured := encodePNG(t, texturedImage(7))

	t.Run("undecodable input scores zero", func(t *testing.T) {
		assert.Zero(t, scorer.Score([]byte("definitely not an image"), textured))
		assert.Zero(t, scorer.Score(textured, nil))
	})

	t.Run("oversized image scores zero without decoding", func(t *testing.T) {
		// Given a 20000x20000 image, 400 MP, in a few dozen bytes
		huge := pngHeader(20000, 20000)

		// When
		score := scorer.Score(huge, textured)

		// Then
		assert.Zero(t, score)
		assert.Zero(t, scorer.Score(textured, huge))
	})

	t.Run("featureless image scores zero", func(t *testing.T) {
		flat := image.NewGray(image.Rect(0, 0, 400, 400))
		for i := range flat.Pix {
			flat.Pix[i] = 90
		}

		assert.Zero(t, scorer.Score(encodePNG(t, flat), textured))
	})

	t.Run("identical images score high and deterministically", func(t *testing.T) {
		first := scorer.Score(textured, textured)
		second := scorer.Score(textured, textured)

		assert.Greater(t, first, 90.0)
		assert.LessOrEqual(t, first, 100.0)
		assert.InDelta(t, first, second, 0)
	})

	t.Run("different content scores lower than identical content", func(t *testing.T) {
		other := encodePNG(t, texturedImage(99))

		same := scorer.Score(textured, textured)
		different := scorer.Score(textured, other)

		assert.GreaterOrEqual(t, different, 0.0)
		assert.Less(t, different, same)
	})
}

// pngHeader returns a PNG that declares width x height pixels but carries no
// image data. DecodeConfig accepts it; a full decode would allocate the bitmap.
func pngHeader(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = 8 // bit depth; colour type 0 is grayscale

	chunk := append([]byte("IHDR"), ihdr...)
	out := []byte("\x89PNG\r\n\x1a\n")
	out = binary.BigEndian.AppendUint32(out, uint32(len(ihdr)))
	out = append(out, chunk...)
	return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(chunk))
}

func TestCheckImageDimensions(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"within budget", pngHeader(8000, 5000), nil},
		{"over budget", pngHeader(20000, 20000), errs.ErrValueIsOutOfRange},
		{"one pixel over", pngHeader(services.MaxImagePixels/1000+1, 1000), errs.ErrValueIsOutOfRange},
		{"not an image", []byte("plain text"), errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := services.CheckImageDimensions("image", tt.data)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
