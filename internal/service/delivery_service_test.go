package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quotely/internal/config"
	"quotely/internal/domain"
	"quotely/internal/port"
	"quotely/internal/service"
	"quotely/mocks"
)

var testS3 = config.S3Config{Bucket: "quotely-docs", PresignExpiry: 3600}

func renderedQuotation() *service.RenderedDocument {
	return &service.RenderedDocument{
		Type:         domain.DocumentTypeQuotation,
		Number:       "QT-2026-0007",
		CustomerName: "Ravi",
		BusinessName: "Bright Security",
		Filename:     "Quotation_QT-2026-0007.pdf",
		Content:      []byte("%PDF-1.3 fake"),
	}
}

func TestDeliveryService_Send(t *testing.T) {
	renderer := new(mocks.MockRenderService)
	storage := new(mocks.MockObjectStorage)
	sender := new(mocks.MockEmailSender)
	svc := service.NewDeliveryService(renderer, storage, sender, testS3, fixedClock())
	tenantID, id := uuid.New(), uuid.New()
	key := service.ArchiveKey(tenantID, domain.DocumentTypeQuotation, "QT-2026-0007")

	renderer.On("QuotationPDF", mock.Anything, tenantID, id, service.RenderOptions{}).Return(renderedQuotation(), nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "quotely-docs" && in.Key == key &&
			in.ContentType == "application/pdf" && in.Size == int64(len("%PDF-1.3 fake"))
	})).Return(&port.UploadOutput{Location: "s3://quotely-docs/" + key}, nil)
	storage.On("GetPresignedURL", mock.Anything, "quotely-docs", key, int64(3600)).Return("https://signed.example/doc", nil)
	sender.On("SendDocumentLink", mock.Anything, port.DocumentEmail{
		ToEmail:      "ravi@example.com",
		CustomerName: "Ravi",
		BusinessName: "Bright Security",
		DocumentKind: "quotation",
		Number:       "QT-2026-0007",
		DownloadURL:  "https://signed.example/doc",
	}).Return(nil)

	receipt, err := svc.Send(context.Background(), tenantID, domain.DocumentTypeQuotation, id,
		service.SendDocumentInput{ToEmail: "ravi@example.com"})

	require.NoError(t, err)
	assert.Equal(t, key, receipt.Key)
	assert.Equal(t, "https://signed.example/doc", receipt.URL)
	assert.Equal(t, "ravi@example.com", receipt.SentTo)
	assert.Equal(t, fixedNow.Add(time.Hour), receipt.ExpiresAt)
	renderer.AssertExpectations(t)
	storage.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestDeliveryService_Send_Disabled(t *testing.T) {
	svc := service.NewDeliveryService(new(mocks.MockRenderService), nil, new(mocks.MockEmailSender), testS3)

	_, err := svc.Send(context.Background(), uuid.New(), domain.DocumentTypeInvoice, uuid.New(),
		service.SendDocumentInput{ToEmail: "a@b.in"})
	assert.ErrorIs(t, err, domain.ErrEmailDeliveryDisabled)
}

func TestDeliveryService_Send_UploadFails(t *testing.T) {
	renderer := new(mocks.MockRenderService)
	storage := new(mocks.MockObjectStorage)
	sender := new(mocks.MockEmailSender)
	svc := service.NewDeliveryService(renderer, storage, sender, testS3)

	renderer.On("InvoicePDF", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&service.RenderedDocument{Number: "INV-2026-0001", Content: []byte("%PDF")}, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := svc.Send(context.Background(), uuid.New(), domain.DocumentTypeInvoice, uuid.New(),
		service.SendDocumentInput{ToEmail: "a@b.in"})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	sender.AssertNotCalled(t, "SendDocumentLink", mock.Anything, mock.Anything)
}

func TestDeliveryService_Send_EmailFailureRemovesArchive(t *testing.T) {
	renderer := new(mocks.MockRenderService)
	storage := new(mocks.MockObjectStorage)
	sender := new(mocks.MockEmailSender)
	svc := service.NewDeliveryService(renderer, storage, sender, testS3)
	tenantID, id := uuid.New(), uuid.New()
	key := service.ArchiveKey(tenantID, domain.DocumentTypeQuotation, "QT-2026-0007")

	renderer.On("QuotationPDF", mock.Anything, tenantID, id, mock.Anything).Return(renderedQuotation(), nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, "quotely-docs", key, int64(3600)).Return("https://signed.example/doc", nil)
	storage.On("Delete", mock.Anything, "quotely-docs", key).Return(nil)
	sender.On("SendDocumentLink", mock.Anything, mock.Anything).Return(errors.New("mailbox unavailable"))

	_, err := svc.Send(context.Background(), tenantID, domain.DocumentTypeQuotation, id,
		service.SendDocumentInput{ToEmail: "ravi@example.com"})

	assert.ErrorContains(t, err, "mailbox unavailable")
	storage.AssertCalled(t, "Delete", mock.Anything, "quotely-docs", key)
}

func TestDeliveryService_Send_PresignFailureRemovesArchive(t *testing.T) {
	renderer := new(mocks.MockRenderService)
	storage := new(mocks.MockObjectStorage)
	sender := new(mocks.MockEmailSender)
	svc := service.NewDeliveryService(renderer, storage, sender, testS3)
	tenantID, id := uuid.New(), uuid.New()
	key := service.ArchiveKey(tenantID, domain.DocumentTypeQuotation, "QT-2026-0007")

	renderer.On("QuotationPDF", mock.Anything, tenantID, id, mock.Anything).Return(renderedQuotation(), nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("expired credentials"))
	storage.On("Delete", mock.Anything, "quotely-docs", key).Return(errors.New("access denied"))

	_, err := svc.Send(context.Background(), tenantID, domain.DocumentTypeQuotation, id,
		service.SendDocumentInput{ToEmail: "ravi@example.com"})

	assert.ErrorContains(t, err, "expired credentials")
	storage.AssertExpectations(t)
	sender.AssertNotCalled(t, "SendDocumentLink", mock.Anything, mock.Anything)
}

func TestDeliveryService_Send_NotFound(t *testing.T) {
	renderer := new(mocks.MockRenderService)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewDeliveryService(renderer, storage, new(mocks.MockEmailSender), testS3)

	renderer.On("QuotationPDF", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrQuotationNotFound)

	_, err := svc.Send(context.Background(), uuid.New(), domain.DocumentTypeQuotation, uuid.New(),
		service.SendDocumentInput{ToEmail: "a@b.in"})

	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestArchiveKey(t *testing.T) {
	tenantID := uuid.MustParse("6f1c2a9e-0d7b-4b7e-9a51-0c1f6f3e2d10")
	assert.Equal(t,
		"tenants/6f1c2a9e-0d7b-4b7e-9a51-0c1f6f3e2d10/invoice/INV-2026-0003.pdf",
		service.ArchiveKey(tenantID, domain.DocumentTypeInvoice, "INV-2026-0003"))
}
