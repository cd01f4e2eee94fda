package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"quotely/internal/domain"
	"quotely/internal/service"
)

// DocumentHandler serves rendered PDFs and emails them to customers.
type DocumentHandler struct {
	renderService   service.RenderService
	deliveryService service.DeliveryService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(renderService service.RenderService, deliveryService service.DeliveryService) *DocumentHandler {
	return &DocumentHandler{renderService: renderService, deliveryService: deliveryService}
}

// QuotationPDF handles GET /api/v1/quotations/:id/pdf
// @Summary Render a quotation
// @Tags documents
// @Produce application/pdf
// @Param id path string true "Quotation ID (UUID)"
// @Param info_page query bool false "Prepend the highlights page" default(true)
// @Success 200 {file} binary "PDF"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Security BearerAuth
// @Router /quotations/{id}/pdf [get]
func (h *DocumentHandler) QuotationPDF(c *gin.Context) {
	h.storedPDF(c, domain.DocumentTypeQuotation)
}

// InvoicePDF handles GET /api/v1/invoices/:id/pdf
// @Summary Render an invoice
// @Tags documents
// @Produce application/pdf
// @Param id path string true "Invoice ID (UUID)"
// @Param info_page query bool false "Prepend the highlights page" default(false)
// @Success 200 {file} binary "PDF"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/pdf [get]
func (h *DocumentHandler) InvoicePDF(c *gin.Context) {
	h.storedPDF(c, domain.DocumentTypeInvoice)
}

func (h *DocumentHandler) storedPDF(c *gin.Context, docType domain.DocumentType) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, string(docType))
	if !ok {
		return
	}

	opts := service.RenderOptions{InfoPage: queryBool(c, "info_page")}
	var (
		doc *service.RenderedDocument
		err error
	)
	if docType == domain.DocumentTypeInvoice {
		doc, err = h.renderService.InvoicePDF(c.Request.Context(), tenantID, id, opts)
	} else {
		doc, err = h.renderService.QuotationPDF(c.Request.Context(), tenantID, id, opts)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	servePDF(c, doc)
}

// AdHocQuotationPDF handles POST /api/v1/quotations/pdf
// @Summary Render an unsaved quotation
// @Description Renders the request body directly; nothing is stored and no number is reserved
// @Tags documents
// @Accept json
// @Produce application/pdf
// @Param request body service.AdHocPDFInput true "Document contents"
// @Success 200 {file} binary "PDF"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /quotations/pdf [post]
func (h *DocumentHandler) AdHocQuotationPDF(c *gin.Context) {
	h.adHocPDF(c, domain.DocumentTypeQuotation)
}

// AdHocInvoicePDF handles POST /api/v1/invoices/pdf
// @Summary Render an unsaved invoice
// @Tags documents
// @Accept json
// @Produce application/pdf
// @Param request body service.AdHocPDFInput true "Document contents"
// @Success 200 {file} binary "PDF"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /invoices/pdf [post]
func (h *DocumentHandler) AdHocInvoicePDF(c *gin.Context) {
	h.adHocPDF(c, domain.DocumentTypeInvoice)
}

func (h *DocumentHandler) adHocPDF(c *gin.Context, docType domain.DocumentType) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input service.AdHocPDFInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.renderService.AdHocPDF(c.Request.Context(), tenantID, docType, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	servePDF(c, doc)
}

// SendQuotation handles POST /api/v1/quotations/:id/send
// @Summary Email a quotation
// @Description Archives the rendered PDF and emails the customer a time-limited link to it
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Param request body service.SendDocumentInput true "Recipient"
// @Success 200 {object} Response{data=domain.DeliveryReceipt} "Sent"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Failure 502 {object} ErrorResponseBody "Archive upload failed"
// @Failure 503 {object} ErrorResponseBody "Email delivery not configured"
// @Security BearerAuth
// @Router /quotations/{id}/send [post]
func (h *DocumentHandler) SendQuotation(c *gin.Context) {
	h.send(c, domain.DocumentTypeQuotation)
}

// SendInvoice handles POST /api/v1/invoices/:id/send
// @Summary Email an invoice
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body service.SendDocumentInput true "Recipient"
// @Success 200 {object} Response{data=domain.DeliveryReceipt} "Sent"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 503 {object} ErrorResponseBody "Email delivery not configured"
// @Security BearerAuth
// @Router /invoices/{id}/send [post]
func (h *DocumentHandler) SendInvoice(c *gin.Context) {
	h.send(c, domain.DocumentTypeInvoice)
}

func (h *DocumentHandler) send(c *gin.Context, docType domain.DocumentType) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, string(docType))
	if !ok {
		return
	}

	var input service.SendDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	receipt, err := h.deliveryService.Send(c.Request.Context(), tenantID, docType, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, receipt)
}

func servePDF(c *gin.Context, doc *service.RenderedDocument) {
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
