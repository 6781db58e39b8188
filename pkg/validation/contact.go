package validation

import (
	"fmt"
	"regexp"
	"strings"

	"go-website-backend/internal/domain"
	"go-website-backend/pkg/sanitize"

	"github.com/go-playground/validator/v10"
)

// User-facing validation messages for the contact form.
const (
	MsgNameInvalid    = "Name is required and must be at least 2 characters."
	MsgEmailRequired  = "Email is required."
	MsgMessageInvalid = "Message is required and must be at least 10 characters."

	// DefaultSubject is substituted when the subject is absent after sanitization.
	DefaultSubject = "No subject"
)

var (
	// RFC 5322 atext plus dots for the part before the @-sign
	localPartRegex = regexp.MustCompile("^[A-Za-z0-9.!#$%&'*+/=?^_`{|}~-]+$")

	// A single domain label: alphanumeric, hyphens only in the middle
	domainLabelRegex = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?$`)

	tldRegex = regexp.MustCompile(`^[A-Za-z]{2,}$`)

	validate = validator.New()
)

// ValidateContactForm sanitizes each field of a raw submission and applies
// the per-field rules. It returns either a usable submission or a map of
// field name to error message; exactly one of the two is non-nil. Field
// errors accumulate independently. Deterministic, no side effects.
func ValidateContactForm(req *domain.ContactRequest) (*domain.ContactSubmission, map[string]string) {
	errs := make(map[string]string)

	name, nameOK := sanitize.Clean(req.Name, sanitize.MaxNameLength)
	if !nameOK || len([]rune(name)) < 2 {
		errs["name"] = MsgNameInvalid
	}

	email, emailOK := sanitize.Clean(req.Email, sanitize.MaxEmailLength)
	if !emailOK {
		errs["email"] = MsgEmailRequired
	} else if err := CheckEmailAddress(email); err != nil {
		errs["email"] = fmt.Sprintf("Invalid email address: %s", err)
	}

	// Subject is optional; it falls back to a placeholder on the success path.
	subject, subjectOK := sanitize.Clean(req.Subject, sanitize.MaxSubjectLength)
	if !subjectOK {
		subject = DefaultSubject
	}

	message, messageOK := sanitize.Clean(req.Message, sanitize.MaxMessageLength)
	if !messageOK || len([]rune(message)) < 10 {
		errs["message"] = MsgMessageInvalid
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &domain.ContactSubmission{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}, nil
}

// CheckEmailAddress verifies the address syntax and domain-label structure.
// The returned error names the specific rule that failed so it can be shown
// to the user.
func CheckEmailAddress(addr string) error {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return fmt.Errorf("an email address must have an @-sign")
	}

	local, domainPart := addr[:at], addr[at+1:]
	if local == "" {
		return fmt.Errorf("there is nothing before the @-sign")
	}
	if domainPart == "" {
		return fmt.Errorf("there is nothing after the @-sign")
	}
	if len(local) > 64 {
		return fmt.Errorf("the part before the @-sign is too long")
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return fmt.Errorf("the part before the @-sign has a misplaced period")
	}
	if !localPartRegex.MatchString(local) {
		return fmt.Errorf("the part before the @-sign contains invalid characters")
	}

	labels := strings.Split(domainPart, ".")
	if len(labels) < 2 {
		return fmt.Errorf("the domain is missing a top-level domain")
	}
	for _, label := range labels {
		if label == "" {
			return fmt.Errorf("the domain has an empty label")
		}
		if len(label) > 63 || !domainLabelRegex.MatchString(label) {
			return fmt.Errorf("the domain contains an invalid label %q", label)
		}
	}
	if !tldRegex.MatchString(labels[len(labels)-1]) {
		return fmt.Errorf("the top-level domain is not valid")
	}

	// Final syntactic pass with the shared validator engine
	if err := validate.Var(addr, "email"); err != nil {
		return fmt.Errorf("the address is not a valid email")
	}

	return nil
}
