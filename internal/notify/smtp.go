package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
)

// SMTPSender delivers messages over plain SMTP with optional auth. There is
// no mail client dependency in this codebase on purpose: one MIME message and
// one SendMail call cover everything the dispatcher needs.
type SMTPSender struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

// NewSMTPSender creates an SMTP-backed sender. username may be empty for
// unauthenticated relays.
func NewSMTPSender(addr, from, username, password string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if idx := strings.Index(addr, ":"); idx != -1 {
			host = addr[:idx]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{addr: addr, from: from, auth: auth}
}

// Send delivers one message. A generated message ID is returned on success so
// callers can correlate delivery with logs.
func (s *SMTPSender) Send(ctx context.Context, msg Message) Result {
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}

	messageID := uuid.NewString()

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Message-ID: <%s>\r\n", messageID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	if err := smtp.SendMail(s.addr, s.auth, s.from, msg.To, []byte(b.String())); err != nil {
		return Result{Err: fmt.Errorf("smtp send: %w", err)}
	}
	return Result{Success: true, MessageID: messageID}
}
