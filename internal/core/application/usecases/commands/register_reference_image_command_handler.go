package commands

import (
	"context"
	"log/slog"

	"shopsecure/internal/core/ports"
)

// RegisterReferenceImageCommandHandler stores or replaces an order's reference image.
type RegisterReferenceImageCommandHandler struct {
	uowFactory OrderUoWFactory
	images     ports.ImageStore
	logger     *slog.Logger
}

// NewRegisterReferenceImageCommandHandler wires the handler to its collaborators.
func NewRegisterReferenceImageCommandHandler(
	uowFactory OrderUoWFactory,
	images ports.ImageStore,
	logger *slog.Logger,
) RegisterReferenceImageCommandHandler {
	return RegisterReferenceImageCommandHandler{
		uowFactory: uowFactory,
		images:     images,
		logger:     logger.With("component", "register_reference_image_handler"),
	}
}

// Handle returns the stored image reference.
func (h *RegisterReferenceImageCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterReferenceImageCommand,
) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	if err := cmd.Principal().RequireAdmin(); err != nil {
		return "", err
	}

	imageRef, err := h.images.Save(ctx, cmd.OrderCode().String(), cmd.Image())
	if err != nil {
		return "", err
	}

	if err = h.persist(ctx, cmd, imageRef); err != nil {
		discardImage(ctx, h.images, h.logger, imageRef)
		return "", err
	}

	return imageRef, nil
}

func (h *RegisterReferenceImageCommandHandler) persist(
	ctx context.Context,
	cmd RegisterReferenceImageCommand,
	imageRef string,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetByCode(ctx, cmd.OrderCode())
	if err != nil {
		return err
	}

	if err = uow.ReferenceImageRepository().Save(ctx, o.ID(), imageRef); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
