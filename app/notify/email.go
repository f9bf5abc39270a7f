package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"

	"rssdigest/app/config"
	"rssdigest/app/feed"
)

// EmailNotifier delivers an HTML digest mail over SMTP with STARTTLS.
type EmailNotifier struct {
	cfg config.EmailConfig
}

func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) Name() string {
	return "email"
}

func (n *EmailNotifier) Send(ctx context.Context, item feed.Item, summary string) error {
	addr := net.JoinHostPort(n.cfg.SMTPHost, strconv.Itoa(n.cfg.SMTPPort))

	dialer := &net.Dialer{Timeout: sendTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, n.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: n.cfg.SMTPHost}); err != nil {
			return fmt.Errorf("STARTTLS failed: %w", err)
		}
	}

	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(n.cfg.Username); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(n.cfg.To); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}

	message, err := n.buildMessage(item, summary)
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

func (n *EmailNotifier) buildMessage(item feed.Item, summary string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	subject := mime.QEncoding.Encode("utf-8", fmt.Sprintf("📰 %s: %s", item.FeedName, item.Title))

	fmt.Fprintf(&buf, "From: %s\r\n", n.cfg.Username)
	fmt.Fprintf(&buf, "To: %s\r\n", n.cfg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTML part: %w", err)
	}

	fmt.Fprintf(part, `<html><body>
<h2>📰 %s</h2>
<h3>%s</h3>
<p>%s</p>
<p><a href="%s">🔗 Read more</a></p>
<hr>
<p><small>Category: %s</small></p>
</body></html>`,
		html.EscapeString(item.FeedName),
		html.EscapeString(item.Title),
		html.EscapeString(summary),
		html.EscapeString(item.URL),
		html.EscapeString(item.Category))

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish MIME message: %w", err)
	}

	return buf.Bytes(), nil
}
