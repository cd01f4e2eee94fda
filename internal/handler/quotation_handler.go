package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotely/internal/service"
)

// QuotationHandler handles quotation endpoints.
type QuotationHandler struct {
	quotationService service.QuotationService
	invoiceService   service.InvoiceService
}

// NewQuotationHandler creates a new QuotationHandler. invoiceService backs
// the convert endpoint.
func NewQuotationHandler(quotationService service.QuotationService, invoiceService service.InvoiceService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService, invoiceService: invoiceService}
}

// Create handles POST /api/v1/quotations
// @Summary Create a quotation
// @Description Header and items are written in one transaction and numbered QT-YYYY-NNNN
// @Tags quotations
// @Accept json
// @Produce json
// @Param request body service.CreateQuotationInput true "Quotation"
// @Success 201 {object} Response{data=domain.Quotation} "Quotation created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "Number could not be reserved"
// @Security BearerAuth
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input service.CreateQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	q, err := h.quotationService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, q)
}

// List handles GET /api/v1/quotations
// @Summary List quotations
// @Description Most recent first
// @Tags quotations
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.DocumentSummary,meta=PagMeta} "Quotations; status NO_DATA when empty"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	list, total, err := h.quotationService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, list, len(list), PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/quotations/:id
// @Summary Get a quotation
// @Description Includes items and the linked invoice, if any
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Success 200 {object} Response{data=domain.Quotation} "Quotation"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Security BearerAuth
// @Router /quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	q, err := h.quotationService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// Update handles PUT /api/v1/quotations/:id
// @Summary Update a quotation
// @Description Omitted fields are unchanged. Supplying items, even an empty list, replaces every item and recomputes totals.
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Param request body service.UpdateQuotationInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Quotation} "Quotation updated"
// @Failure 400 {object} ErrorResponseBody "Validation error or empty update"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Security BearerAuth
// @Router /quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	var input service.UpdateQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	q, err := h.quotationService.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// Delete handles DELETE /api/v1/quotations/:id
// @Summary Delete a quotation
// @Description Items are removed with it; invoices created from it keep their data but lose the link
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Success 200 {object} Response{data=DeletedResponse} "Quotation deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Security BearerAuth
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondDeleted(c, id)
}

// Convert handles POST /api/v1/quotations/:id/convert
// @Summary Convert a quotation into an invoice
// @Description Copies customer, tax, discount and items into a new invoice that references the quotation. The quotation is not changed.
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Param request body service.ConvertQuotationInput false "Invoice-only fields"
// @Success 201 {object} Response{data=domain.Invoice} "Invoice created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Security BearerAuth
// @Router /quotations/{id}/convert [post]
func (h *QuotationHandler) Convert(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	var input service.ConvertQuotationInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	inv, err := h.invoiceService.CreateFromQuotation(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}
