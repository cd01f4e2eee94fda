package port

import "context"

// DocumentEmail describes a rendered document sent to a customer.
type DocumentEmail struct {
	ToEmail      string
	CustomerName string
	BusinessName string
	DocumentKind string
	Number       string
	DownloadURL  string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendDocumentLink(ctx context.Context, msg DocumentEmail) error
}
