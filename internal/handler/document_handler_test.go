package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quotely/internal/domain"
	"quotely/internal/handler"
	"quotely/internal/service"
	"quotely/mocks"
)

func newDocumentHandler() (*handler.DocumentHandler, *mocks.MockRenderService, *mocks.MockDeliveryService) {
	render := new(mocks.MockRenderService)
	delivery := new(mocks.MockDeliveryService)
	return handler.NewDocumentHandler(render, delivery), render, delivery
}

func TestDocumentHandler_QuotationPDF(t *testing.T) {
	h, render, _ := newDocumentHandler()
	tenantID, id := uuid.New(), uuid.New()

	doc := &service.RenderedDocument{
		Type:     domain.DocumentTypeQuotation,
		Number:   "QT-2026-0004",
		Filename: "Quotation_QT-2026-0004.pdf",
		Content:  []byte("%PDF-1.3 fake"),
	}
	render.On("QuotationPDF", mock.Anything, tenantID, id, mock.MatchedBy(func(o service.RenderOptions) bool {
		return o.InfoPage != nil && !*o.InfoPage
	})).Return(doc, nil)

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/quotations/"+id.String()+"/pdf?info_page=false", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, tenantID, "member")

	h.QuotationPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="Quotation_QT-2026-0004.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3 fake", w.Body.String())
	render.AssertExpectations(t)
}

func TestDocumentHandler_InvoicePDF_DefaultOptions(t *testing.T) {
	h, render, _ := newDocumentHandler()
	tenantID, id := uuid.New(), uuid.New()

	render.On("InvoicePDF", mock.Anything, tenantID, id, service.RenderOptions{}).
		Return(nil, domain.ErrInvoiceNotFound)

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/invoices/"+id.String()+"/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, tenantID, "member")

	h.InvoicePDF(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	render.AssertExpectations(t)
}

func TestDocumentHandler_AdHocQuotationPDF(t *testing.T) {
	h, render, _ := newDocumentHandler()
	tenantID := uuid.New()

	render.On("AdHocPDF", mock.Anything, tenantID, domain.DocumentTypeQuotation, mock.MatchedBy(func(in service.AdHocPDFInput) bool {
		return in.CustomerName == "Walk-in" && len(in.Items) == 1
	})).Return(&service.RenderedDocument{Filename: "Quotation_draft.pdf", Content: []byte("%PDF")}, nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/quotations/pdf", map[string]interface{}{
		"customer_name": "Walk-in",
		"items":         []map[string]interface{}{{"item_name": "Cable", "quantity": 2, "unit_price": 150}},
	})
	setAuthContext(c, tenantID, tenantID, "member")

	h.AdHocQuotationPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Quotation_draft.pdf")
	render.AssertExpectations(t)
}

func TestDocumentHandler_SendInvoice(t *testing.T) {
	h, _, delivery := newDocumentHandler()
	tenantID, id := uuid.New(), uuid.New()

	receipt := &domain.DeliveryReceipt{
		Key:       "documents/x/invoices/INV-2026-0001.pdf",
		URL:       "https://example.test/signed",
		SentTo:    "buyer@example.com",
		ExpiresAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
	delivery.On("Send", mock.Anything, tenantID, domain.DocumentTypeInvoice, id,
		service.SendDocumentInput{ToEmail: "buyer@example.com"}).Return(receipt, nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/invoices/"+id.String()+"/send", map[string]string{
		"to_email": "buyer@example.com",
	})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, tenantID, "member")

	h.SendInvoice(c)

	assert.Equal(t, http.StatusOK, w.Code)
	delivery.AssertExpectations(t)
}

func TestDocumentHandler_Send_InvalidEmail(t *testing.T) {
	h, _, delivery := newDocumentHandler()
	id := uuid.New()

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/quotations/"+id.String()+"/send", map[string]string{
		"to_email": "not-an-email",
	})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.SendQuotation(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	delivery.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_Send_DeliveryDisabled(t *testing.T) {
	h, _, delivery := newDocumentHandler()
	tenantID, id := uuid.New(), uuid.New()

	delivery.On("Send", mock.Anything, tenantID, domain.DocumentTypeQuotation, id, mock.Anything).
		Return(nil, domain.ErrEmailDeliveryDisabled)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/quotations/"+id.String()+"/send", map[string]string{
		"to_email": "buyer@example.com",
	})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, tenantID, "member")

	h.SendQuotation(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "DELIVERY_DISABLED", decodeResponse(t, w).Error.Code)
}
