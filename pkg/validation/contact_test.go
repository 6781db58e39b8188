package validation_test

import (
	"testing"

	"go-website-backend/internal/domain"
	"go-website-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
)

func validRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Subject: "Machines",
		Message: "Hello there, interested in your machines.",
	}
}

func TestValidateContactForm(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		sub, errs := validation.ValidateContactForm(validRequest())
		assert.Empty(t, errs)
		assert.Equal(t, "Ana", sub.Name)
		assert.Equal(t, "ana@example.com", sub.Email)
		assert.Equal(t, "Machines", sub.Subject)
	})

	t.Run("empty subject gets placeholder", func(t *testing.T) {
		req := validRequest()
		req.Subject = ""
		sub, errs := validation.ValidateContactForm(req)
		assert.Empty(t, errs)
		assert.Equal(t, validation.DefaultSubject, sub.Subject)
	})

	t.Run("all fields missing", func(t *testing.T) {
		sub, errs := validation.ValidateContactForm(&domain.ContactRequest{})
		assert.Nil(t, sub)
		assert.Len(t, errs, 3)
		assert.Equal(t, validation.MsgNameInvalid, errs["name"])
		assert.Equal(t, validation.MsgEmailRequired, errs["email"])
		assert.Equal(t, validation.MsgMessageInvalid, errs["message"])
	})

	t.Run("errors accumulate independently", func(t *testing.T) {
		sub, errs := validation.ValidateContactForm(&domain.ContactRequest{
			Name:    "A",
			Email:   "not-an-email",
			Message: "hi",
		})
		assert.Nil(t, sub)
		assert.Len(t, errs, 3)
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "message")
		assert.Contains(t, errs["email"], "Invalid email address:")
	})

	t.Run("short name", func(t *testing.T) {
		req := validRequest()
		req.Name = "A"
		_, errs := validation.ValidateContactForm(req)
		assert.Equal(t, validation.MsgNameInvalid, errs["name"])
	})

	t.Run("short message", func(t *testing.T) {
		req := validRequest()
		req.Message = "too short"
		_, errs := validation.ValidateContactForm(req)
		assert.Equal(t, validation.MsgMessageInvalid, errs["message"])
	})

	t.Run("markup stripped before checks", func(t *testing.T) {
		req := validRequest()
		req.Name = "<b>Ana Maria</b>"
		req.Message = "Hello <i>there</i>, interested in your machines."
		sub, errs := validation.ValidateContactForm(req)
		assert.Empty(t, errs)
		assert.Equal(t, "Ana Maria", sub.Name)
		assert.NotContains(t, sub.Message, "<")
	})

	t.Run("name that is only markup is missing", func(t *testing.T) {
		req := validRequest()
		req.Name = "<script></script>"
		_, errs := validation.ValidateContactForm(req)
		assert.Equal(t, validation.MsgNameInvalid, errs["name"])
	})

	t.Run("deterministic", func(t *testing.T) {
		req := validRequest()
		first, _ := validation.ValidateContactForm(req)
		second, _ := validation.ValidateContactForm(req)
		assert.Equal(t, first, second)
	})
}

func TestCheckEmailAddress(t *testing.T) {
	t.Run("valid addresses", func(t *testing.T) {
		for _, addr := range []string{
			"ana@example.com",
			"first.last@example.co.uk",
			"user+tag@sub.domain.org",
			"x_y-z@example.io",
		} {
			assert.NoError(t, validation.CheckEmailAddress(addr), addr)
		}
	})

	cases := []struct {
		addr   string
		reason string
	}{
		{"not-an-email", "must have an @-sign"},
		{"@example.com", "nothing before the @-sign"},
		{"ana@", "nothing after the @-sign"},
		{"ana@example", "missing a top-level domain"},
		{"ana@example..com", "empty label"},
		{"ana@-example.com", "invalid label"},
		{"an a@example.com", "invalid characters"},
		{".ana@example.com", "misplaced period"},
		{"ana..b@example.com", "misplaced period"},
		{"ana@example.c0m", "top-level domain is not valid"},
	}

	for _, tc := range cases {
		t.Run(tc.addr, func(t *testing.T) {
			err := validation.CheckEmailAddress(tc.addr)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.reason)
		})
	}
}
