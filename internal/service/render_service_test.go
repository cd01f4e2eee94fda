package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quotely/internal/config"
	"quotely/internal/domain"
	"quotely/internal/service"
	"quotely/mocks"
)

var testBusiness = config.BusinessConfig{
	Name:       "Default Traders",
	Address:    "MG Road",
	Phone:      "0000",
	Highlights: []string{"Fast service"},
}

func storedQuotation(tenantID uuid.UUID) *domain.Quotation {
	return &domain.Quotation{
		Document: domain.Document{
			ID:           uuid.New(),
			TenantID:     tenantID,
			Number:       "QT-2026-0007",
			DocumentDate: fixedNow,
			CustomerName: "Ravi",
			Subtotal:     dec("10000"),
			TotalAmount:  dec("10000"),
			Items: []domain.LineItem{
				{ItemName: "Dome Camera", Quantity: dec("4"), UnitPrice: dec("2500"), TotalPrice: dec("10000")},
			},
		},
		Status: domain.QuotationStatusDraft,
	}
}

func TestRenderService_QuotationPDF(t *testing.T) {
	qRepo := new(mocks.MockQuotationRepo)
	uRepo := new(mocks.MockUserRepo)
	svc := service.NewRenderService(qRepo, new(mocks.MockInvoiceRepo), uRepo, testBusiness, fixedClock())
	tenantID := uuid.New()
	q := storedQuotation(tenantID)

	qRepo.On("GetByID", mock.Anything, tenantID, q.ID).Return(q, nil)
	uRepo.On("GetByID", mock.Anything, tenantID).
		Return(&domain.User{ID: tenantID, BusinessName: "Bright Security", Email: "owner@bright.in"}, nil)

	doc, err := svc.QuotationPDF(context.Background(), tenantID, q.ID, service.RenderOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.DocumentTypeQuotation, doc.Type)
	assert.Equal(t, "Quotation_QT-2026-0007.pdf", doc.Filename)
	assert.Equal(t, "Bright Security", doc.BusinessName)
	assert.Equal(t, "Ravi", doc.CustomerName)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))
}

func TestRenderService_QuotationPDF_InfoPageToggle(t *testing.T) {
	qRepo := new(mocks.MockQuotationRepo)
	svc := service.NewRenderService(qRepo, new(mocks.MockInvoiceRepo), nil, testBusiness)
	tenantID := uuid.New()
	q := storedQuotation(tenantID)

	qRepo.On("GetByID", mock.Anything, tenantID, q.ID).Return(q, nil)

	off := false
	with, err := svc.QuotationPDF(context.Background(), tenantID, q.ID, service.RenderOptions{})
	require.NoError(t, err)
	without, err := svc.QuotationPDF(context.Background(), tenantID, q.ID, service.RenderOptions{InfoPage: &off})
	require.NoError(t, err)

	assert.Greater(t, len(with.Content), len(without.Content))
	assert.Equal(t, "Default Traders", with.BusinessName)
}

func TestRenderService_InvoicePDF_NotFound(t *testing.T) {
	iRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewRenderService(new(mocks.MockQuotationRepo), iRepo, nil, testBusiness)

	iRepo.On("GetByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrInvoiceNotFound)

	_, err := svc.InvoicePDF(context.Background(), uuid.New(), uuid.New(), service.RenderOptions{})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestRenderService_InvoicePDF(t *testing.T) {
	iRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewRenderService(new(mocks.MockQuotationRepo), iRepo, nil, testBusiness)
	tenantID := uuid.New()
	due := fixedNow.AddDate(0, 0, 7)
	inv := &domain.Invoice{
		Document: domain.Document{
			ID: uuid.New(), TenantID: tenantID, Number: "INV-2026-0002", DocumentDate: fixedNow,
			CustomerName: "Anu", TaxPercent: dec("18"), Subtotal: dec("100"), TaxAmount: dec("18"), TotalAmount: dec("118"),
		},
		PaymentStatus: domain.PaymentStatusPending,
		DueDate:       &due,
	}
	iRepo.On("GetByID", mock.Anything, tenantID, inv.ID).Return(inv, nil)

	doc, err := svc.InvoicePDF(context.Background(), tenantID, inv.ID, service.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Invoice_INV-2026-0002.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))
}

func TestRenderService_AdHocPDF(t *testing.T) {
	svc := service.NewRenderService(new(mocks.MockQuotationRepo), new(mocks.MockInvoiceRepo), nil, testBusiness, fixedClock())

	doc, err := svc.AdHocPDF(context.Background(), uuid.New(), domain.DocumentTypeQuotation, service.AdHocPDFInput{
		CustomerName: "Walk-in",
		Items: []service.AdHocItem{
			{ItemName: "Dome Camera", Quantity: dec("2"), UnitPrice: dec("2500")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Quotation_draft.pdf", doc.Filename)
	assert.Equal(t, "Walk-in", doc.CustomerName)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))
}
