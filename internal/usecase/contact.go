package usecase

import (
	"context"
	"time"

	"go-website-backend/internal/domain"
	"go-website-backend/pkg/email"
	"go-website-backend/pkg/logger"
	"go-website-backend/pkg/validation"
)

// User-facing pipeline outcome messages.
const (
	MsgAccepted       = "Thank you for your message. We will get back to you shortly!"
	MsgInvalid        = "Please fix the following errors:"
	MsgRateLimited    = "Too many submissions. Please try again later."
	MsgDeliveryFailed = "Failed to send email. Please try again or contact us directly."
)

// MailService composes and delivers the notification pair for a submission.
type MailService interface {
	Compose(sub domain.ContactSubmission, at time.Time) (operator, ack email.Message)
	Dispatch(operator, ack email.Message) error
}

// RateLimiter gates submissions per client identity.
type RateLimiter interface {
	Allow(ctx context.Context, identity string) (bool, time.Duration)
}

type contactUsecase struct {
	mail    MailService
	limiter RateLimiter
	now     func() time.Time
}

// NewContactUsecase creates the contact submission pipeline.
func NewContactUsecase(mail MailService, limiter RateLimiter) domain.ContactUsecase {
	return &contactUsecase{
		mail:    mail,
		limiter: limiter,
		now:     time.Now,
	}
}

// Submit runs the submission pipeline:
// rate-check -> sanitize+validate -> compose -> dispatch.
// The rate check comes first so abusive traffic never reaches
// validation or the mail transport.
func (uc *contactUsecase) Submit(ctx context.Context, req *domain.ContactRequest, clientIdentity string) *domain.SubmitResult {
	allowed, retryAfter := uc.limiter.Allow(ctx, clientIdentity)
	if !allowed {
		logger.Log.Info("contact submission rate limited",
			"identity", clientIdentity,
			"retry_after", retryAfter.String(),
		)
		return &domain.SubmitResult{
			Status:     domain.SubmitRateLimited,
			Message:    MsgRateLimited,
			RetryAfter: retryAfter,
		}
	}

	sub, fieldErrs := validation.ValidateContactForm(req)
	if len(fieldErrs) > 0 {
		return &domain.SubmitResult{
			Status:      domain.SubmitInvalid,
			Message:     MsgInvalid,
			FieldErrors: fieldErrs,
		}
	}

	operator, ack := uc.mail.Compose(*sub, uc.now())
	if err := uc.mail.Dispatch(operator, ack); err != nil {
		// Transport detail stays in the logs; the caller gets a generic message
		logger.Log.Error("contact email dispatch failed",
			"error", err,
			"sender", sub.Email,
		)
		return &domain.SubmitResult{
			Status:  domain.SubmitDeliveryFailed,
			Message: MsgDeliveryFailed,
		}
	}

	logger.Log.Info("contact submission accepted", "sender", sub.Email, "subject", sub.Subject)
	return &domain.SubmitResult{
		Status:  domain.SubmitAccepted,
		Message: MsgAccepted,
	}
}
