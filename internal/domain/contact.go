package domain

import (
	"context"
	"time"
)

// ContactRequest represents a raw contact form submission. Fields are
// untrusted; sanitization and validation happen in the pipeline, so no
// binding constraints are declared here.
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// ContactSubmission is a sanitized, validated submission ready for
// composition. Subject carries the placeholder when the sender left it blank.
type ContactSubmission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// SubmitStatus tags the outcome of a submission.
type SubmitStatus int

const (
	SubmitAccepted SubmitStatus = iota
	SubmitRateLimited
	SubmitInvalid
	SubmitDeliveryFailed
)

// SubmitResult is the terminal outcome of the submission pipeline.
// Exactly one variant applies; a fresh value is built per request.
type SubmitResult struct {
	Status      SubmitStatus
	Message     string
	FieldErrors map[string]string // populated only for SubmitInvalid
	RetryAfter  time.Duration     // populated only for SubmitRateLimited
}

// ContactUsecase defines the contact submission pipeline.
type ContactUsecase interface {
	// Submit runs rate-check, sanitize/validate, compose and dispatch for
	// one submission. clientIdentity scopes the rate limit (network address).
	Submit(ctx context.Context, req *ContactRequest, clientIdentity string) *SubmitResult
}
