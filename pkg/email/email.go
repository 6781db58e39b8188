package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"go-website-backend/config"
	"go-website-backend/internal/domain"
	"go-website-backend/pkg/logger"
)

// Message is a composed outbound email: subject, recipients, and a body in
// both plain-text and HTML renderings.
type Message struct {
	Subject  string
	To       []string
	TextBody string
	HTMLBody string
}

// Service composes and sends contact form notifications via SMTP.
type Service struct {
	host          string
	port          string
	username      string
	password      string
	fromEmail     string
	operatorEmail string
	siteName      string
	dialTimeout   time.Duration
}

// NewService creates an email service from the SMTP configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{
		host:          cfg.SMTPHost,
		port:          cfg.SMTPPort,
		username:      cfg.SMTPUsername,
		password:      cfg.SMTPPassword,
		fromEmail:     cfg.SMTPFromEmail,
		operatorEmail: cfg.Site.Email,
		siteName:      cfg.Site.Name,
		dialTimeout:   10 * time.Second,
	}
}

const timeLayout = "2006-01-02 15:04:05"

// operatorEmailTemplate renders the notification sent to the site operator.
// Executed through html/template so every field is escaped on render,
// whether or not the submission was sanitized upstream.
const operatorEmailTemplate = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
        <h2 style="color: #1f8a4c; border-bottom: 2px solid #1f8a4c; padding-bottom: 10px;">New Contact Form Submission</h2>

        <p style="background-color: #f6f7f5; padding: 10px; border-left: 4px solid #1f8a4c;">
            <strong>Received:</strong> {{.Received}}
        </p>

        <table style="width: 100%; margin-top: 20px;">
            <tr>
                <td style="padding: 8px; background-color: #f6f7f5;"><strong>Name:</strong></td>
                <td style="padding: 8px;">{{.Name}}</td>
            </tr>
            <tr>
                <td style="padding: 8px; background-color: #f6f7f5;"><strong>Email:</strong></td>
                <td style="padding: 8px;"><a href="mailto:{{.Email}}">{{.Email}}</a></td>
            </tr>
            <tr>
                <td style="padding: 8px; background-color: #f6f7f5;"><strong>Subject:</strong></td>
                <td style="padding: 8px;">{{.Subject}}</td>
            </tr>
        </table>

        <div style="margin-top: 20px; padding: 15px; background-color: #f9f9f9; border-radius: 4px;">
            <strong>Message:</strong>
            <p style="margin-top: 10px; white-space: pre-wrap;">{{.Message}}</p>
        </div>

        <hr style="margin: 20px 0; border: none; border-top: 1px solid #ddd;">
        <p style="font-size: 12px; color: #666;">This email was sent from the {{.SiteName}} contact form.</p>
    </div>
</body>
</html>`

// acknowledgmentEmailTemplate renders the auto-reply sent to the submitter.
const acknowledgmentEmailTemplate = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
        <h2 style="color: #1f8a4c;">Thank you for contacting {{.SiteName}}</h2>

        <p>Dear {{.Name}},</p>

        <p>Thank you for reaching out to us. We have received your message and will get back to you as soon as possible.</p>

        <div style="margin: 20px 0; padding: 15px; background-color: #f6f7f5; border-left: 4px solid #1f8a4c;">
            <strong>Your message:</strong>
            <p style="margin-top: 10px; white-space: pre-wrap;">{{.Message}}</p>
        </div>

        <p>Best regards,<br><strong>{{.SiteName}} Team</strong></p>

        <hr style="margin: 20px 0; border: none; border-top: 1px solid #ddd;">
        <p style="font-size: 12px; color: #666;">This is an automated message. Please do not reply to this email.</p>
    </div>
</body>
</html>`

var (
	operatorTmpl = template.Must(template.New("operator").Parse(operatorEmailTemplate))
	ackTmpl      = template.Must(template.New("acknowledgment").Parse(acknowledgmentEmailTemplate))
)

type templateData struct {
	Received string
	Name     string
	Email    string
	Subject  string
	Message  string
	SiteName string
}

// Compose builds the operator notification and the sender acknowledgment
// for one validated submission. Pure transformation; at is the composition
// timestamp embedded in the operator body.
func (s *Service) Compose(sub domain.ContactSubmission, at time.Time) (operator, ack Message) {
	data := templateData{
		Received: at.Format(timeLayout),
		Name:     sub.Name,
		Email:    sub.Email,
		Subject:  sub.Subject,
		Message:  sub.Message,
		SiteName: s.siteName,
	}

	var operatorHTML, ackHTML bytes.Buffer
	// Templates are compile-time constants; execution over plain strings cannot fail
	_ = operatorTmpl.Execute(&operatorHTML, data)
	_ = ackTmpl.Execute(&ackHTML, data)

	operator = Message{
		Subject: "New Contact Form Submission: " + sub.Subject,
		To:      []string{s.operatorEmail},
		TextBody: fmt.Sprintf(`New contact form submission received at %s

From: %s
Email: %s
Subject: %s

Message:
%s

---
This email was sent from the %s contact form.
`, data.Received, sub.Name, sub.Email, sub.Subject, sub.Message, s.siteName),
		HTMLBody: operatorHTML.String(),
	}

	ack = Message{
		Subject: fmt.Sprintf("Thank you for contacting %s", s.siteName),
		To:      []string{sub.Email},
		TextBody: fmt.Sprintf(`Dear %s,

Thank you for reaching out to %s. We have received your message and will get back to you as soon as possible.

Your message:
%s

Best regards,
%s Team

---
This is an automated message. Please do not reply to this email.
`, sub.Name, s.siteName, sub.Message, s.siteName),
		HTMLBody: ackHTML.String(),
	}

	return operator, ack
}

// Dispatch delivers both messages through the SMTP transport. Without
// configured credentials it logs the would-be messages and reports success,
// keeping local environments usable. Any transport error fails the whole
// dispatch; there is no partial-success reporting.
func (s *Service) Dispatch(operator, ack Message) error {
	if !s.IsConfigured() {
		logger.Log.Warn("email transport not configured, skipping send",
			"operator_subject", operator.Subject,
			"operator_to", operator.To,
			"ack_subject", ack.Subject,
			"ack_to", ack.To,
		)
		logger.Log.Debug("would-be operator email", "body", operator.TextBody)
		logger.Log.Debug("would-be acknowledgment email", "body", ack.TextBody)
		return nil
	}

	if err := s.send(operator); err != nil {
		return fmt.Errorf("operator notification: %w", err)
	}
	if err := s.send(ack); err != nil {
		return fmt.Errorf("acknowledgment: %w", err)
	}
	return nil
}

// IsConfigured checks if the service has valid SMTP configuration
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// send delivers one message over SMTP with STARTTLS when offered.
// A dial timeout bounds how long a dead transport can stall the request.
func (s *Service) send(msg Message) error {
	addr := net.JoinHostPort(s.host, s.port)

	conn, err := net.DialTimeout("tcp", addr, s.dialTimeout)
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return fmt.Errorf("starttls failed: %w", err)
		}
	}

	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := client.Mail(s.fromEmail); err != nil {
		return fmt.Errorf("smtp mail from failed: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt to %s failed: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data failed: %w", err)
	}
	if _, err := w.Write(s.encode(msg)); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message body: %w", err)
	}

	return client.Quit()
}

// headerValue neutralizes CR/LF and other control characters so a
// user-influenced value cannot start additional header lines.
func headerValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}

// encode builds a multipart/alternative MIME message carrying both renderings.
func (s *Service) encode(msg Message) []byte {
	var buf bytes.Buffer
	alt := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", headerValue(s.fromEmail))
	fmt.Fprintf(&buf, "To: %s\r\n", headerValue(strings.Join(msg.To, ", ")))
	fmt.Fprintf(&buf, "Subject: %s\r\n", headerValue(msg.Subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n", alt.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	textPart, _ := alt.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	fmt.Fprint(textPart, msg.TextBody)

	htmlPart, _ := alt.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	fmt.Fprint(htmlPart, msg.HTMLBody)

	alt.Close()
	return buf.Bytes()
}
