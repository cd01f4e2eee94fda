// Package email builds the messages sent to customers; the noop and ses
// subpackages deliver them.
package email

import (
	"fmt"
	"html"
	"strings"

	"quotely/internal/port"
)

// Message is a rendered email ready for delivery.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// BuildDocumentLink renders the "your document is ready" email.
func BuildDocumentLink(msg port.DocumentEmail) Message {
	kind := strings.ToLower(msg.DocumentKind)
	sender := msg.BusinessName
	if sender == "" {
		sender = "us"
	}
	greeting := "Hello"
	if msg.CustomerName != "" {
		greeting = "Hi " + msg.CustomerName
	}

	subject := fmt.Sprintf("Your %s %s", kind, msg.Number)
	if msg.BusinessName != "" {
		subject = fmt.Sprintf("%s from %s", subject, msg.BusinessName)
	}

	text := fmt.Sprintf("%s,\n\nPlease find your %s %s from %s at the link below:\n%s\n\nThe link expires after a limited time.\n",
		greeting, kind, msg.Number, sender, msg.DownloadURL)

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>%s,</p>
  <p>Please find your %s <strong>%s</strong> from %s below.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #111; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download PDF</a>
  </p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <p style="color: #999; font-size: 12px;">The link expires after a limited time.</p>
</body>
</html>`,
		html.EscapeString(greeting), html.EscapeString(kind), html.EscapeString(msg.Number),
		html.EscapeString(sender), html.EscapeString(msg.DownloadURL), html.EscapeString(msg.DownloadURL))

	return Message{Subject: subject, Text: text, HTML: body}
}
