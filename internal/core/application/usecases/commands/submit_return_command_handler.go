package commands

import (
	"context"
	"errors"
	"log/slog"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/order"
	"shopsecure/internal/core/domain/model/returns"
	"shopsecure/internal/core/domain/model/securitylog"
	"shopsecure/internal/core/ports"
	"shopsecure/internal/pkg/errs"
)

// SubmitReturnResult is the decision returned to the requester.
type SubmitReturnResult struct {
	ReturnID   kernel.UUID
	ImageRef   string
	Similarity float64
	RiskScore  float64
	Decision   returns.Decision
	Severity   returns.Severity
}

// SubmitReturnCommandHandler runs the return decision pipeline:
// validate the order, store the submitted image, score it against the order's
// reference image, classify, and record the return with its audit entry.
type SubmitReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	images     ports.ImageStore
	scorer     ImageScorer
	classifier Classifier
	clock      ports.Clock
	logger     *slog.Logger
}

// NewSubmitReturnCommandHandler wires the handler to its collaborators.
func NewSubmitReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	images ports.ImageStore,
	scorer ImageScorer,
	classifier Classifier,
	clock ports.Clock,
	logger *slog.Logger,
) SubmitReturnCommandHandler {
	return SubmitReturnCommandHandler{
		uowFactory: uowFactory,
		images:     images,
		scorer:     scorer,
		classifier: classifier,
		clock:      clock,
		logger:     logger.With("component", "submit_return_handler"),
	}
}

// Handle fails before anything is written when the order is unknown or not
// Delivered, or has no reference image. The return record and the security log
// entry are committed together; the stored image is removed if that fails.
func (h *SubmitReturnCommandHandler) Handle(ctx context.Context, cmd SubmitReturnCommand) (SubmitReturnResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitReturnResult{}, err
	}

	uow := h.uowFactory.Create()

	o, reference, err := h.loadReturnable(ctx, uow, cmd.OrderCode())
	if err != nil {
		return SubmitReturnResult{}, err
	}

	imageRef, err := h.images.Save(ctx, o.Code().String(), cmd.Image())
	if err != nil {
		return SubmitReturnResult{}, err
	}

	result, err := h.decide(ctx, uow, o, cmd, imageRef, reference)
	if err != nil {
		discardImage(ctx, h.images, h.logger, imageRef)
		return SubmitReturnResult{}, err
	}

	h.logger.InfoContext(ctx, "return evaluated",
		"order_code", o.Code().String(),
		"similarity", result.Similarity,
		"risk_score", result.RiskScore,
		"decision", result.Decision.String(),
	)
	return result, nil
}

// loadReturnable returns the Delivered order and its reference image bytes.
func (h *SubmitReturnCommandHandler) loadReturnable(
	ctx context.Context,
	uow ReturnUoW,
	code kernel.OrderCode,
) (*order.Order, []byte, error) {
	o, err := uow.OrderRepository().GetByCode(ctx, code)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, order.ErrInvalidReturnState
	}
	if err != nil {
		return nil, nil, err
	}
	if err = o.ValidateReturnable(); err != nil {
		return nil, nil, err
	}

	referenceRef, err := uow.ReferenceImageRepository().Get(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, returns.ErrReferenceImageMissing
	}
	if err != nil {
		return nil, nil, err
	}

	reference, err := h.images.Load(ctx, referenceRef)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, returns.ErrReferenceImageMissing
	}
	if err != nil {
		return nil, nil, err
	}

	return o, reference, nil
}

func (h *SubmitReturnCommandHandler) decide(
	ctx context.Context,
	uow ReturnUoW,
	o *order.Order,
	cmd SubmitReturnCommand,
	imageRef string,
	reference []byte,
) (SubmitReturnResult, error) {
	similarity := h.scorer.Score(cmd.Image(), reference)

	assessment, err := h.classifier.Classify(similarity)
	if err != nil {
		return SubmitReturnResult{}, err
	}

	rr, err := returns.NewReturnRequest(
		kernel.NewUUID(),
		o.ID(),
		o.Code(),
		cmd.RequesterEmail(),
		cmd.Reason(),
		imageRef,
		assessment.Similarity,
		assessment.RiskScore,
		assessment.Decision,
		h.clock.Now(),
	)
	if err != nil {
		return SubmitReturnResult{}, err
	}

	entry, err := securitylog.NewTransactionLog(kernel.NewUUID(), o.UserID(), rr)
	if err != nil {
		return SubmitReturnResult{}, err
	}

	if err = uow.Begin(ctx); err != nil {
		return SubmitReturnResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ReturnRequestRepository().Add(ctx, rr); err != nil {
		return SubmitReturnResult{}, err
	}
	if err = uow.SecurityLogRepository().Add(ctx, entry); err != nil {
		return SubmitReturnResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return SubmitReturnResult{}, err
	}

	return SubmitReturnResult{
		ReturnID:   rr.ID(),
		ImageRef:   imageRef,
		Similarity: rr.Similarity(),
		RiskScore:  rr.RiskScore(),
		Decision:   rr.Decision(),
		Severity:   rr.Severity(),
	}, nil
}
