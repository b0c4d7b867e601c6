package commands

import (
	"shopsecure/internal/core/domain/services"
)

// ImageScorer compares a submitted image with a reference image.
type ImageScorer interface {
	Score(submitted, reference []byte) float64
}

// Classifier turns a similarity into a return decision.
type Classifier interface {
	Classify(similarity float64) (services.Assessment, error)
}
