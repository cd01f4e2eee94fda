package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"quotely/internal/config"
	"quotely/internal/domain"
	"quotely/internal/port"
)

// SendDocumentInput is the DTO for emailing a stored document.
type SendDocumentInput struct {
	ToEmail         string `json:"to_email" binding:"required,email"`
	IncludeInfoPage *bool  `json:"include_info_page"`
}

// DeliveryService archives a rendered document and emails the customer a
// time-limited download link.
type DeliveryService interface {
	Send(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, id uuid.UUID, input SendDocumentInput) (*domain.DeliveryReceipt, error)
}

type deliveryService struct {
	renderer RenderService
	storage  port.ObjectStorage
	sender   port.EmailSender
	s3Cfg    config.S3Config
	opts     docOptions
}

// NewDeliveryService creates a DeliveryService. With a nil storage or sender
// every Send fails with domain.ErrEmailDeliveryDisabled.
func NewDeliveryService(renderer RenderService, storage port.ObjectStorage, sender port.EmailSender, s3Cfg config.S3Config, opts ...Option) DeliveryService {
	return &deliveryService{
		renderer: renderer,
		storage:  storage,
		sender:   sender,
		s3Cfg:    s3Cfg,
		opts:     applyOptions(opts),
	}
}

func (s *deliveryService) Send(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, id uuid.UUID, input SendDocumentInput) (*domain.DeliveryReceipt, error) {
	if s.storage == nil || s.sender == nil {
		return nil, domain.ErrEmailDeliveryDisabled
	}

	renderOpts := RenderOptions{InfoPage: input.IncludeInfoPage}
	var (
		doc *RenderedDocument
		err error
	)
	switch docType {
	case domain.DocumentTypeQuotation:
		doc, err = s.renderer.QuotationPDF(ctx, tenantID, id, renderOpts)
	case domain.DocumentTypeInvoice:
		doc, err = s.renderer.InvoicePDF(ctx, tenantID, id, renderOpts)
	default:
		return nil, fmt.Errorf("unknown document type %q", docType)
	}
	if err != nil {
		return nil, err
	}

	key := ArchiveKey(tenantID, docType, doc.Number)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(doc.Content),
		ContentType: "application/pdf",
		Size:        int64(len(doc.Content)),
	}); err != nil {
		log.Printf("delivery.Send: upload %s failed: %v", key, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		s.discardArchive(ctx, key)
		return nil, fmt.Errorf("presigning %s: %w", key, err)
	}

	if err := s.sender.SendDocumentLink(ctx, port.DocumentEmail{
		ToEmail:      input.ToEmail,
		CustomerName: doc.CustomerName,
		BusinessName: doc.BusinessName,
		DocumentKind: string(docType),
		Number:       doc.Number,
		DownloadURL:  url,
	}); err != nil {
		s.discardArchive(ctx, key)
		return nil, fmt.Errorf("sending %s %s: %w", docType, doc.Number, err)
	}

	return &domain.DeliveryReceipt{
		Key:       key,
		URL:       url,
		SentTo:    input.ToEmail,
		ExpiresAt: s.opts.now().UTC().Add(time.Duration(s.s3Cfg.PresignExpiry) * time.Second),
	}, nil
}

// discardArchive removes an object whose link never reached the customer.
// A failed delete is logged and otherwise ignored.
func (s *deliveryService) discardArchive(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, s.s3Cfg.Bucket, key); err != nil {
		log.Printf("delivery.Send: removing %s failed: %v", key, err)
	}
}

// ArchiveKey is the object key a rendered document is stored under.
func ArchiveKey(tenantID uuid.UUID, docType domain.DocumentType, number string) string {
	return fmt.Sprintf("tenants/%s/%s/%s.pdf", tenantID, docType, number)
}
