package services

import (
	"bytes"
	"fmt"
	"image"
	// Decoders for uploaded photos.
	_ "image/jpeg"
	_ "image/png"
	"math"

	"shopsecure/internal/pkg/errs"
	"shopsecure/internal/pkg/orb"
)

// MaxImagePixels bounds width*height of an image before it is decoded. A small
// compressed file can otherwise expand into a multi-gigabyte bitmap.
const MaxImagePixels = 40_000_000

// CheckImageDimensions reads only the image header. It returns a
// ValueIsInvalid error when the header does not parse and a ValueIsOutOfRange
// error when the image exceeds MaxImagePixels.
func CheckImageDimensions(paramName string, data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("dimensions %dx%d are empty", cfg.Width, cfg.Height))
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > MaxImagePixels {
		return errs.NewValueIsOutOfRangeError(paramName+" pixels", pixels, 1, MaxImagePixels)
	}
	return nil
}

// SimilarityOptions configures feature extraction for the scorer.
type SimilarityOptions struct {
	// MaxFeatures caps local features per image.
	MaxFeatures int
	// Size is the square side images are normalised to before extraction.
	Size int
}

// DefaultSimilarityOptions caps extraction at 1000 features on a 500 px image.
func DefaultSimilarityOptions() SimilarityOptions {
	return SimilarityOptions{MaxFeatures: 1000, Size: 500}
}

// SimilarityScorer measures visual correspondence between two images as a value
// in [0, 100] rounded to two decimals.
//
// Score is 0 when either image fails to decode, when either image has no
// features, or when no cross-checked matches exist. Otherwise it is
//
//	matches / max(featuresA, featuresB) * 100
//
// clamped to 100. The result is deterministic for identical input.
type SimilarityScorer struct {
	detector *orb.Detector
}

// NewSimilarityScorer builds a scorer with its own feature detector.
func NewSimilarityScorer(opts SimilarityOptions) SimilarityScorer {
	o := orb.DefaultOptions()
	o.MaxFeatures = opts.MaxFeatures
	o.Size = opts.Size
	return SimilarityScorer{detector: orb.NewDetector(o)}
}

// Score compares two encoded images (JPEG or PNG). Images over
// MaxImagePixels score 0 without being decoded.
func (s SimilarityScorer) Score(imageA, imageB []byte) float64 {
	a, err := decodeBounded(imageA)
	if err != nil {
		return 0
	}
	b, err := decodeBounded(imageB)
	if err != nil {
		return 0
	}
	return s.ScoreImages(a, b)
}

func decodeBounded(data []byte) (image.Image, error) {
	if err := CheckImageDimensions("image", data); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// ScoreImages compares two decoded images.
func (s SimilarityScorer) ScoreImages(a, b image.Image) float64 {
	fa := s.detector.Detect(a)
	fb := s.detector.Detect(b)
	if len(fa) == 0 || len(fb) == 0 {
		return 0
	}

	matches := orb.MatchCrossCheck(orb.Descriptors(fa), orb.Descriptors(fb))
	if len(matches) == 0 {
		return 0
	}

	score := float64(len(matches)) / float64(max(len(fa), len(fb))) * 100
	score = math.Min(score, 100)
	return math.Round(score*100) / 100
}
