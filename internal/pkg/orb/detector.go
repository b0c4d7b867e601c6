package orb

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/nfnt/resize"
)

const (
	// patchRadius is the radius used for orientation.
	patchRadius = 15

	// border keeps every rotated test box inside the image.
	border = 22

	harrisK      = 0.04
	harrisRadius = 3
)

// Options configures feature extraction.
type Options struct {
	// MaxFeatures caps the number of keypoints kept per image.
	MaxFeatures int
	// Size is the side length images are resized to before detection.
	Size int
	// Levels is the number of pyramid levels.
	Levels int
	// ScaleFactor is the ratio between consecutive pyramid levels.
	ScaleFactor float64
	// FastThreshold is the intensity difference a FAST arc pixel must exceed.
	FastThreshold int
}

// DefaultOptions mirrors the classic ORB defaults on a 500x500 canvas.
func DefaultOptions() Options {
	return Options{
		MaxFeatures:   1000,
		Size:          500,
		Levels:        8,
		ScaleFactor:   1.2,
		FastThreshold: 20,
	}
}

// Keypoint is a detected corner in base image coordinates.
type Keypoint struct {
	X, Y     float64
	Level    int
	Angle    float64
	Response float64
}

// Feature pairs a keypoint with its descriptor.
type Feature struct {
	Keypoint   Keypoint
	Descriptor Descriptor
}

// Descriptors returns the descriptors of features in order.
func Descriptors(features []Feature) []Descriptor {
	out := make([]Descriptor, len(features))
	for i, f := range features {
		out[i] = f.Descriptor
	}
	return out
}

// Detector extracts features. It holds no mutable state and is safe for
// concurrent use.
type Detector struct {
	opts Options
}

func NewDetector(opts Options) *Detector {
	def := DefaultOptions()
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = def.MaxFeatures
	}
	if opts.Size < 2*border+1 {
		opts.Size = def.Size
	}
	if opts.Levels <= 0 {
		opts.Levels = def.Levels
	}
	if opts.ScaleFactor <= 1 {
		opts.ScaleFactor = def.ScaleFactor
	}
	if opts.FastThreshold <= 0 {
		opts.FastThreshold = def.FastThreshold
	}
	return &Detector{opts: opts}
}

func (d *Detector) Options() Options {
	return d.opts
}

// Detect returns at most MaxFeatures features ordered by descending response.
// Images without corners yield an empty slice.
func (d *Detector) Detect(img image.Image) []Feature {
	size := uint(d.opts.Size)
	base := toGray(resize.Resize(size, size, img, resize.Bilinear))

	quotas := levelQuotas(d.opts.MaxFeatures, d.opts.Levels, d.opts.ScaleFactor)
	features := make([]Feature, 0, d.opts.MaxFeatures)

	for l := range d.opts.Levels {
		scale := math.Pow(d.opts.ScaleFactor, float64(l))
		level := base
		if l > 0 {
			w := uint(math.Round(float64(base.Rect.Dx()) / scale))
			h := uint(math.Round(float64(base.Rect.Dy()) / scale))
			if int(w) < 2*border+1 || int(h) < 2*border+1 {
				break
			}
			level = toGray(resize.Resize(w, h, base, resize.Bilinear))
		}

		corners := detectFAST(level, d.opts.FastThreshold)
		for i := range corners {
			corners[i].response = harrisResponse(level, corners[i].x, corners[i].y)
		}
		corners = suppressNonMax(corners, level.Rect.Dx(), level.Rect.Dy())
		sortCorners(corners)
		if len(corners) > quotas[l] {
			corners = corners[:quotas[l]]
		}

		integral := newIntegralImage(level)
		for _, c := range corners {
			angle := orientation(level, c.x, c.y)
			features = append(features, Feature{
				Keypoint: Keypoint{
					X:        float64(c.x) * scale,
					Y:        float64(c.y) * scale,
					Level:    l,
					Angle:    angle,
					Response: c.response,
				},
				Descriptor: describe(integral, c.x, c.y, angle),
			})
		}
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].Keypoint.Response > features[j].Keypoint.Response
	})
	if len(features) > d.opts.MaxFeatures {
		features = features[:d.opts.MaxFeatures]
	}
	return features
}

// levelQuotas spreads n features over the pyramid proportionally to level area.
func levelQuotas(n, levels int, scaleFactor float64) []int {
	factor := 1 / scaleFactor
	first := float64(n) * (1 - factor) / (1 - math.Pow(factor, float64(levels)))

	quotas := make([]int, levels)
	sum := 0
	for l := 0; l < levels-1; l++ {
		quotas[l] = int(math.Round(first * math.Pow(factor, float64(l))))
		sum += quotas[l]
	}
	quotas[levels-1] = max(n-sum, 0)
	return quotas
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}

	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.SetGray(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(img.At(x, y)).(color.Gray))
		}
	}
	return g
}
