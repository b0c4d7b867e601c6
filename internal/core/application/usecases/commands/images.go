package commands

import (
	"context"
	"log/slog"

	"shopsecure/internal/core/domain/services"
	"shopsecure/internal/core/ports"
	"shopsecure/internal/pkg/errs"
)

// MaxImageSize bounds uploaded images.
const MaxImageSize = 10 << 20

func validateImageSize(paramName string, data []byte) error {
	if len(data) == 0 {
		return errs.NewValueIsRequiredError(paramName)
	}
	if len(data) > MaxImageSize {
		return errs.NewValueIsOutOfRangeError(paramName+" size", len(data), 1, MaxImageSize)
	}
	return nil
}

// validateDecodableImage requires a JPEG or PNG header within the pixel budget.
// Returned item photos are not checked this way: an undecodable or oversized
// return image scores 0 and is rejected by the classifier instead.
func validateDecodableImage(paramName string, data []byte) error {
	if err := validateImageSize(paramName, data); err != nil {
		return err
	}
	return services.CheckImageDimensions(paramName, data)
}

// discardImage removes an image whose owning transaction failed.
func discardImage(ctx context.Context, store ports.ImageStore, logger *slog.Logger, ref string) {
	if ref == "" {
		return
	}
	if err := store.Delete(ctx, ref); err != nil {
		logger.WarnContext(ctx, "failed to discard orphaned image", "image_ref", ref, "error", err)
	}
}
