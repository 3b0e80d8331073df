// Package mailer delivers rendered HTML messages over SMTP.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wneessen/go-mail"

	"weddinginvites/internal/config"
)

// DispatchError reports a failed delivery to a set of recipients.
type DispatchError struct {
	To  []string
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("failed to send email to %v: %v", e.To, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// InlineImage is an image embedded in the message and referenced from the
// HTML body as cid:<ContentID>.
type InlineImage struct {
	Path      string
	ContentID string
}

// Message is one outgoing email.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Image   *InlineImage
}

// Outcome is the result of a dispatch. Err is set only when Sent is false.
type Outcome struct {
	Sent bool
	Err  error
}

// Transport delivers composed messages. *mail.Client satisfies it.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer composes messages and hands them to a Transport.
type Mailer struct {
	from      string
	transport Transport
	logger    *slog.Logger
}

// New creates a Mailer submitting through STARTTLS with SMTP PLAIN auth.
func New(logger *slog.Logger, cfg config.MailConfig) (*Mailer, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.SMTPTimeout
	}
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Address),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return NewWithTransport(logger, cfg.Address, client), nil
}

// NewWithTransport creates a Mailer over an arbitrary Transport.
func NewWithTransport(logger *slog.Logger, from string, transport Transport) *Mailer {
	return &Mailer{from: from, transport: transport, logger: logger}
}

// Send composes and delivers msg. An unreadable inline image is logged and
// the message goes out without it.
func (m *Mailer) Send(ctx context.Context, msg Message) Outcome {
	if len(msg.To) == 0 {
		return Outcome{Err: &DispatchError{Err: errors.New("no recipients")}}
	}

	composed, err := m.compose(msg)
	if err != nil {
		m.logger.Error("Failed to compose email", "to", msg.To, "error", err)
		return Outcome{Err: &DispatchError{To: msg.To, Err: err}}
	}

	if err := m.transport.DialAndSendWithContext(ctx, composed); err != nil {
		m.logger.Error("Failed to send email", "to", msg.To, "error", err)
		return Outcome{Err: &DispatchError{To: msg.To, Err: err}}
	}

	m.logger.Info("Successfully sent email", "to", msg.To)
	return Outcome{Sent: true}
}

func (m *Mailer) compose(msg Message) (*mail.Msg, error) {
	composed := mail.NewMsg()
	if err := composed.From(m.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := composed.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	composed.Subject(msg.Subject)
	composed.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if msg.Image != nil && msg.Image.Path != "" {
		m.embed(composed, msg.Image)
	}
	return composed, nil
}

func (m *Mailer) embed(composed *mail.Msg, img *InlineImage) {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		m.logger.Warn("Failed to attach image, sending without it", "path", img.Path, "error", err)
		return
	}
	name := filepath.Base(img.Path)
	if err := composed.EmbedReader(name, bytes.NewReader(data), mail.WithFileContentID(img.ContentID)); err != nil {
		m.logger.Warn("Failed to attach image, sending without it", "path", img.Path, "error", err)
	}
}
