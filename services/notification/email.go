package notification

import (
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"datekeeper/models"
)

// emailSubject varies with urgency so the 7-day reminder stands out in an
// inbox next to the 6-month one.
func emailSubject(documentName string, expiryDate time.Time, daysRemaining int) string {
	switch {
	case daysRemaining <= 7:
		return fmt.Sprintf("URGENT: %s expires in %d days", documentName, daysRemaining)
	case daysRemaining <= 30:
		return fmt.Sprintf("Reminder: %s expires in %d days", documentName, daysRemaining)
	default:
		return fmt.Sprintf("Heads up: %s expires on %s", documentName, expiryDate.Format("2006-01-02"))
	}
}

func textBody(documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int, bucket models.ReminderBucket) string {
	return fmt.Sprintf(`Hello,

Your document is expiring soon.

Document: %s
Type: %s
Expiry Date: %s
Days Remaining: %d

This is your %s reminder. Renew the document before it expires to avoid
any disruption.

- DateKeeper
`, documentName, documentType, expiryDate.Format("2006-01-02"), daysRemaining, bucket.Label())
}

func htmlBody(documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int, bucket models.ReminderBucket) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Document Expiry Reminder</h2>
  <p>Your document is expiring soon.</p>
  <table cellpadding="6">
    <tr><td><b>Document</b></td><td>%s</td></tr>
    <tr><td><b>Type</b></td><td>%s</td></tr>
    <tr><td><b>Expiry Date</b></td><td>%s</td></tr>
    <tr><td><b>Days Remaining</b></td><td>%d</td></tr>
  </table>
  <p>This is your <b>%s</b> reminder. Renew the document before it expires.</p>
  <p>- DateKeeper</p>
</body>
</html>`, documentName, documentType, expiryDate.Format("2006-01-02"), daysRemaining, bucket.Label())
}

// buildMessage assembles a multipart/alternative MIME message with plain text
// and HTML parts.
func buildMessage(from, to, subject, text, html string) ([]byte, error) {
	var body strings.Builder
	writer := multipart.NewWriter(&body)

	headers := fmt.Sprintf("From: DateKeeper <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: multipart/alternative; boundary=%q\r\n\r\n",
		from, to, subject, writer.Boundary())

	textPart, err := writer.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=utf-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(text)); err != nil {
		return nil, err
	}

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=utf-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(html)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return []byte(headers + body.String()), nil
}

func (d *DefaultDispatcher) sendSMTP(to, documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int, bucket models.ReminderBucket) error {
	msg, err := buildMessage(
		d.smtpUser,
		to,
		emailSubject(documentName, expiryDate, daysRemaining),
		textBody(documentName, documentType, expiryDate, daysRemaining, bucket),
		htmlBody(documentName, documentType, expiryDate, daysRemaining, bucket),
	)
	if err != nil {
		return fmt.Errorf("failed to build email message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", d.smtpHost, d.smtpPort)
	auth := smtp.PlainAuth("", d.smtpUser, d.smtpPassword, d.smtpHost)
	if err := smtp.SendMail(addr, auth, d.smtpUser, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
