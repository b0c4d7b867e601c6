package commands

import (
	"context"
	"log/slog"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/order"
	"shopsecure/internal/core/ports"
)

// PlaceOrderResult identifies the placed order.
type PlaceOrderResult struct {
	OrderID           kernel.UUID
	Code              kernel.OrderCode
	Status            order.Status
	ReferenceImageRef string
}

// PlaceOrderCommandHandler creates Pending orders and stores their optional
// reference image.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	images     ports.ImageStore
	clock      ports.Clock
	logger     *slog.Logger
}

// NewPlaceOrderCommandHandler wires the handler to its collaborators.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	images ports.ImageStore,
	clock ports.Clock,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		images:     images,
		clock:      clock,
		logger:     logger.With("component", "place_order_handler"),
	}
}

// Handle stores the reference image first, then writes the order and the image
// reference in one transaction. The image is deleted again if the transaction fails.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewOrderCode(),
		cmd.UserID(),
		cmd.ProductName(),
		cmd.Price(),
		cmd.Address(),
		cmd.PaymentType(),
		h.clock.Now(),
	)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	var imageRef string
	if cmd.HasReferenceImage() {
		imageRef, err = h.images.Save(ctx, o.Code().String(), cmd.ReferenceImage())
		if err != nil {
			return PlaceOrderResult{}, err
		}
	}

	if err = h.persist(ctx, o, imageRef); err != nil {
		discardImage(ctx, h.images, h.logger, imageRef)
		return PlaceOrderResult{}, err
	}

	return PlaceOrderResult{
		OrderID:           o.ID(),
		Code:              o.Code(),
		Status:            o.Status(),
		ReferenceImageRef: imageRef,
	}, nil
}

func (h *PlaceOrderCommandHandler) persist(ctx context.Context, o *order.Order, imageRef string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if imageRef != "" {
		if err := uow.ReferenceImageRepository().Save(ctx, o.ID(), imageRef); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
