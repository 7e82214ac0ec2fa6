package main

import (
	"github.com/hibiken/asynq"

	"bookcatalog-backend/internal/infrastructure/email"
	emailjob "bookcatalog-backend/internal/infrastructure/email/job"
	"bookcatalog-backend/internal/shared"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	reviewSubmitted *emailjob.ReviewSubmittedHandler
	reviewApproved  *emailjob.ReviewApprovedHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(cfg *Config) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	return &HandlerRegistry{
		reviewSubmitted: emailjob.NewReviewSubmittedHandler(emailSvc),
		reviewApproved:  emailjob.NewReviewApprovedHandler(emailSvc),
	}
}

// RegisterHandlers maps task types to their handlers
func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypeReviewSubmittedEmail, r.reviewSubmitted)
	mux.Handle(shared.TypeReviewApprovedEmail, r.reviewApproved)
}
