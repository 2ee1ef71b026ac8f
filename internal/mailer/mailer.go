// Package mailer delivers rendered newsletters over SMTP. Recipients are
// either the static configured list or all active subscribers; each message
// is sent individually so one failing address never blocks the rest.
package mailer

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/smtp"

	"github.com/jimdaga/morning-press/internal/config"
)

// ErrNoCredentials is reported when the sender address or password is
// missing. This is a configuration failure, not a crash.
var ErrNoCredentials = errors.New("email credentials not configured")

// ErrNoRecipients is reported when neither a configured list nor active
// subscribers yield any addresses.
var ErrNoRecipients = errors.New("no active subscribers found")

// SubscriberSource resolves the active recipient list when no static list
// is configured.
type SubscriberSource interface {
	ActiveEmails() ([]string, error)
}

// Report aggregates the outcome of one delivery run.
type Report struct {
	Sent    int
	Failed  int
	Message string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg         *config.Config
	subscribers SubscriberSource
	logger      *slog.Logger

	// send is swapped out in tests.
	send sendFunc
}

func New(cfg *config.Config, subscribers SubscriberSource, logger *slog.Logger) *Mailer {
	return &Mailer{
		cfg:         cfg,
		subscribers: subscribers,
		logger:      logger,
		send:        smtp.SendMail,
	}
}

// Send delivers the HTML to every resolved recipient, one message each.
// Per-recipient failures are counted, not propagated; the error return
// covers only configuration and recipient-resolution problems.
func (m *Mailer) Send(html, subject string) (Report, error) {
	if m.cfg.EmailAddress == "" || m.cfg.EmailPassword == "" {
		return Report{}, ErrNoCredentials
	}

	recipients, err := m.resolveRecipients()
	if err != nil {
		return Report{}, err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPServer, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.EmailAddress, m.cfg.EmailPassword, m.cfg.SMTPServer)

	var report Report
	for _, recipient := range recipients {
		msg := m.buildMessage(recipient, subject, html)
		if err := m.send(addr, auth, m.cfg.EmailAddress, []string{recipient}, msg); err != nil {
			report.Failed++
			m.logger.Error("Failed to send newsletter", "recipient", recipient, "error", err)
			continue
		}
		report.Sent++
		m.logger.Info("Newsletter sent", "recipient", recipient)
	}

	report.Message = fmt.Sprintf("Newsletter sent to %d/%d recipients", report.Sent, len(recipients))
	if report.Failed > 0 {
		report.Message += fmt.Sprintf(" (%d failed)", report.Failed)
	}
	return report, nil
}

// SendTest delivers a single copy to one address with a tagged subject.
func (m *Mailer) SendTest(html, subject, to string) (Report, error) {
	if m.cfg.EmailAddress == "" || m.cfg.EmailPassword == "" {
		return Report{}, ErrNoCredentials
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPServer, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.EmailAddress, m.cfg.EmailPassword, m.cfg.SMTPServer)

	msg := m.buildMessage(to, "[TEST] "+subject, html)
	if err := m.send(addr, auth, m.cfg.EmailAddress, []string{to}, msg); err != nil {
		return Report{Failed: 1, Message: fmt.Sprintf("Test email failed: %v", err)}, nil
	}

	m.logger.Info("Test newsletter sent", "recipient", to)
	return Report{Sent: 1, Message: "Test newsletter sent to: " + to}, nil
}

func (m *Mailer) resolveRecipients() ([]string, error) {
	if len(m.cfg.RecipientEmails) > 0 {
		return m.cfg.RecipientEmails, nil
	}
	if m.subscribers == nil {
		return nil, ErrNoRecipients
	}
	emails, err := m.subscribers.ActiveEmails()
	if err != nil {
		return nil, fmt.Errorf("resolving subscribers: %w", err)
	}
	if len(emails) == 0 {
		return nil, ErrNoRecipients
	}
	return emails, nil
}

func (m *Mailer) buildMessage(to, subject, html string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n",
		m.cfg.SenderName,
		m.cfg.EmailAddress,
		to,
		mime.QEncoding.Encode("utf-8", subject),
	)
	return []byte(headers + html)
}
