package noop

import (
	"context"
	"log"

	"quotely/internal/email"
	"quotely/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs what would be sent.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendDocumentLink(_ context.Context, msg port.DocumentEmail) error {
	m := email.BuildDocumentLink(msg)
	log.Printf("[NOOP EMAIL] to=%s subject=%q link=%s", msg.ToEmail, m.Subject, msg.DownloadURL)
	return nil
}
