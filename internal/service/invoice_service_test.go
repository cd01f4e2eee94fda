package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quotely/internal/domain"
	"quotely/internal/service"
	"quotely/mocks"
)

func TestInvoiceService_Create_DefaultsToPending(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	qRepo := new(mocks.MockQuotationRepo)
	svc := service.NewInvoiceService(repo, qRepo, fixedClock())
	tenantID := uuid.New()

	var captured *domain.Invoice
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.Invoice) }).Return(nil)
	repo.On("GetByID", mock.Anything, tenantID, mock.Anything).Return(&domain.Invoice{}, nil)

	_, err := svc.Create(context.Background(), tenantID, service.CreateInvoiceInput{
		DocumentFields: service.DocumentFields{CustomerName: "Ravi", Items: cameraItems()},
		DueDate:        service.NewDate(fixedNow.AddDate(0, 0, 15)),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, captured.PaymentStatus)
	require.NotNil(t, captured.DueDate)
	assert.Equal(t, "2026-03-29", captured.DueDate.Format("2006-01-02"))
	assert.Nil(t, captured.QuotationID)
	assert.True(t, dec("10000").Equal(captured.TotalAmount))
	qRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_UnknownQuotation(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	qRepo := new(mocks.MockQuotationRepo)
	svc := service.NewInvoiceService(repo, qRepo)
	tenantID, qID := uuid.New(), uuid.New()

	qRepo.On("GetByID", mock.Anything, tenantID, qID).Return(nil, domain.ErrQuotationNotFound)

	_, err := svc.Create(context.Background(), tenantID, service.CreateInvoiceInput{
		DocumentFields: service.DocumentFields{CustomerName: "Ravi"},
		QuotationID:    &qID,
	})

	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_InvalidPaymentStatus(t *testing.T) {
	svc := service.NewInvoiceService(new(mocks.MockInvoiceRepo), new(mocks.MockQuotationRepo))

	_, err := svc.Create(context.Background(), uuid.New(), service.CreateInvoiceInput{
		DocumentFields: service.DocumentFields{CustomerName: "Ravi"},
		PaymentStatus:  domain.PaymentStatus("refunded"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestInvoiceService_CreateFromQuotation_CopiesQuotation(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	qRepo := new(mocks.MockQuotationRepo)
	svc := service.NewInvoiceService(repo, qRepo, fixedClock())
	tenantID, qID, invID := uuid.New(), uuid.New(), uuid.New()
	invRef := uuid.New()

	quotation := &domain.Quotation{
		Document: domain.Document{
			ID:              qID,
			TenantID:        tenantID,
			Number:          "QT-2026-0004",
			CustomerName:    "Ravi",
			CustomerPhone:   "8888888888",
			CustomerAddress: "Kochi",
			TaxPercent:      dec("18"),
			DiscountAmount:  dec("100"),
			Notes:           "Installation included",
			Items: []domain.LineItem{
				{InventoryID: &invRef, ItemCode: "CAM", ItemName: "Dome Camera", Unit: "piece", Quantity: dec("4"), UnitPrice: dec("2500"), SortOrder: 3},
				{ItemName: "Cable", Unit: "roll", Quantity: dec("1"), UnitPrice: dec("1200"), SortOrder: 7},
			},
		},
		Status: domain.QuotationStatusSent,
	}
	qRepo.On("GetByID", mock.Anything, tenantID, qID).Return(quotation, nil)

	var captured *domain.Invoice
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*domain.Invoice)
			captured.ID = invID
		}).Return(nil)
	repo.On("GetByID", mock.Anything, tenantID, invID).Return(&domain.Invoice{Document: domain.Document{ID: invID}}, nil)

	inv, err := svc.CreateFromQuotation(context.Background(), tenantID, qID, service.ConvertQuotationInput{})

	require.NoError(t, err)
	assert.Equal(t, invID, inv.ID)

	require.NotNil(t, captured.QuotationID)
	assert.Equal(t, qID, *captured.QuotationID)
	assert.Equal(t, "Ravi", captured.CustomerName)
	assert.Equal(t, "Kochi", captured.CustomerAddress)
	assert.Equal(t, "Installation included", captured.Notes)
	assert.Equal(t, domain.PaymentStatusPending, captured.PaymentStatus)
	require.Len(t, captured.Items, 2)
	assert.Equal(t, &invRef, captured.Items[0].InventoryID)
	assert.Equal(t, 3, captured.Items[0].SortOrder)
	assert.Equal(t, 7, captured.Items[1].SortOrder)
	assert.True(t, dec("11200").Equal(captured.Subtotal))
	assert.True(t, dec("2016").Equal(captured.TaxAmount))
	assert.True(t, dec("13116").Equal(captured.TotalAmount))

	qRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_CreateFromQuotation_OverridesNotes(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	qRepo := new(mocks.MockQuotationRepo)
	svc := service.NewInvoiceService(repo, qRepo)
	tenantID, qID := uuid.New(), uuid.New()

	qRepo.On("GetByID", mock.Anything, tenantID, qID).
		Return(&domain.Quotation{Document: domain.Document{ID: qID, CustomerName: "Ravi", Notes: "old"}}, nil)

	var captured *domain.Invoice
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.Invoice) }).Return(nil)
	repo.On("GetByID", mock.Anything, tenantID, mock.Anything).Return(&domain.Invoice{}, nil)

	paid := domain.PaymentStatusPaid
	_, err := svc.CreateFromQuotation(context.Background(), tenantID, qID, service.ConvertQuotationInput{
		Notes:         strPtr("paid in cash"),
		PaymentStatus: paid,
	})

	require.NoError(t, err)
	assert.Equal(t, "paid in cash", captured.Notes)
	assert.Equal(t, paid, captured.PaymentStatus)
}

func TestInvoiceService_CreateFromQuotation_NotFound(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	qRepo := new(mocks.MockQuotationRepo)
	svc := service.NewInvoiceService(repo, qRepo)

	qRepo.On("GetByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrQuotationNotFound)

	_, err := svc.CreateFromQuotation(context.Background(), uuid.New(), uuid.New(), service.ConvertQuotationInput{})

	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
}

func TestInvoiceService_Update_PaymentStatus(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo, new(mocks.MockQuotationRepo))
	tenantID, id := uuid.New(), uuid.New()
	partial := domain.PaymentStatusPartial

	repo.On("Update", mock.Anything, tenantID, id, mock.MatchedBy(func(p domain.DocumentPatch) bool {
		return p.Status != nil && *p.Status == "partial" && p.Items == nil && p.ValidUntil == nil
	})).Return(nil)
	repo.On("GetByID", mock.Anything, tenantID, id).Return(&domain.Invoice{PaymentStatus: partial}, nil)

	inv, err := svc.Update(context.Background(), tenantID, id, service.UpdateInvoiceInput{PaymentStatus: &partial})

	require.NoError(t, err)
	assert.Equal(t, partial, inv.PaymentStatus)
}

func TestInvoiceService_Update_InvalidPaymentStatus(t *testing.T) {
	svc := service.NewInvoiceService(new(mocks.MockInvoiceRepo), new(mocks.MockQuotationRepo))
	bad := domain.PaymentStatus("lost")

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), service.UpdateInvoiceInput{PaymentStatus: &bad})

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestInvoiceService_Update_Empty(t *testing.T) {
	svc := service.NewInvoiceService(new(mocks.MockInvoiceRepo), new(mocks.MockQuotationRepo))

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), service.UpdateInvoiceInput{})

	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)
}
