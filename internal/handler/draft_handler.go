package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotely/internal/service"
)

// DraftHandler handles AI-assisted quotation drafting.
type DraftHandler struct {
	draftService service.DraftService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// QuotationDraft handles POST /api/v1/ai/quotation-draft
// @Summary Draft a quotation from free text
// @Description Matches a customer's message against the catalog and proposes customer details and line items. Nothing is saved.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body service.DraftQuotationInput true "Customer request"
// @Success 200 {object} Response{data=domain.QuotationDraft} "Proposed quotation"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 422 {object} ErrorResponseBody "Model answer could not be understood"
// @Failure 429 {object} ErrorResponseBody "AI provider rate limited; see Retry-After"
// @Failure 503 {object} ErrorResponseBody "AI drafting not configured"
// @Security BearerAuth
// @Router /ai/quotation-draft [post]
func (h *DraftHandler) QuotationDraft(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input service.DraftQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	draft, err := h.draftService.DraftQuotation(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, draft)
}
