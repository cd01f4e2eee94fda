package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"quotely/internal/domain"
	"quotely/internal/export"
	"quotely/internal/service"
)

// ExportHandler serves the quotation and invoice registers as files.
type ExportHandler struct {
	exportService service.ExportService
	now           func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService, now: time.Now}
}

// Quotations handles GET /api/v1/exports/quotations
// @Summary Download the quotation register
// @Tags exports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary "Register"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Security BearerAuth
// @Router /exports/quotations [get]
func (h *ExportHandler) Quotations(c *gin.Context) {
	h.register(c, domain.DocumentTypeQuotation, "Quotations")
}

// Invoices handles GET /api/v1/exports/invoices
// @Summary Download the invoice register
// @Tags exports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary "Register"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Security BearerAuth
// @Router /exports/invoices [get]
func (h *ExportHandler) Invoices(c *gin.Context) {
	h.register(c, domain.DocumentTypeInvoice, "Invoices")
}

// register buffers the whole file so a failure midway still produces a
// proper error response.
func (h *ExportHandler) register(c *gin.Context, docType domain.DocumentType, base string) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatCSV))))

	var buf bytes.Buffer
	if err := h.exportService.WriteRegister(c.Request.Context(), tenantID, docType, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(base, format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
