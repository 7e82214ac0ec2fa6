package email

import (
	"context"
	"fmt"
	"net/smtp"

	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/pkg/logger"
)

type EmailService interface {
	SendReviewSubmitted(ctx context.Context, data shared.ReviewSubmittedPayload) error
	SendReviewApproved(ctx context.Context, data shared.ReviewApprovedPayload) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendReviewSubmitted(ctx context.Context, data shared.ReviewSubmittedPayload) error {
	subject := fmt.Sprintf("New review submitted for %q", data.BookTitle)
	body := fmt.Sprintf(`A new review is waiting for moderation.

Book: %s
Author: %s
Reviewer: %s (%s)
Rating: %d/5

%s`,
		data.BookTitle, data.BookAuthor, data.ReviewerName, data.ReviewerEmail,
		data.Rating, data.Comment)

	return s.send(data.Recipient, subject, body)
}

func (s *smtpEmailService) SendReviewApproved(ctx context.Context, data shared.ReviewApprovedPayload) error {
	subject := fmt.Sprintf("Your review for %q was approved", data.BookTitle)
	body := fmt.Sprintf(`Hi %s,

Your review (rating: %d/5) for %q has been approved and is now visible
to other readers.`,
		data.ReviewerName, data.Rating, data.BookTitle)

	return s.send(data.Recipient, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
