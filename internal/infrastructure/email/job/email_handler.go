package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/infrastructure/email"
	"bookcatalog-backend/internal/shared"
)

// ============================================
// Review Submitted Handler
// ============================================

type ReviewSubmittedHandler struct {
	emailService email.EmailService
}

func NewReviewSubmittedHandler(emailService email.EmailService) *ReviewSubmittedHandler {
	return &ReviewSubmittedHandler{
		emailService: emailService,
	}
}

func (h *ReviewSubmittedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ReviewSubmittedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ReviewSubmitted payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("review_id", payload.ReviewID).
		Str("book", payload.BookTitle).
		Msg("Processing review submitted notification")

	if err := h.emailService.SendReviewSubmitted(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send review submitted email")
		return fmt.Errorf("send review submitted email: %w", err)
	}

	return nil
}

// ============================================
// Review Approved Handler
// ============================================

type ReviewApprovedHandler struct {
	emailService email.EmailService
}

func NewReviewApprovedHandler(emailService email.EmailService) *ReviewApprovedHandler {
	return &ReviewApprovedHandler{
		emailService: emailService,
	}
}

func (h *ReviewApprovedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ReviewApprovedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ReviewApproved payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("recipient", payload.Recipient).
		Str("book", payload.BookTitle).
		Msg("Processing review approved notification")

	if err := h.emailService.SendReviewApproved(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send review approved email")
		return fmt.Errorf("send review approved email: %w", err)
	}

	return nil
}
