package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotely/internal/domain"
	"quotely/internal/middleware"
	"quotely/internal/parser"
)

// Outcome values carried in APIResponse.Status.
const (
	StatusSuccess = "SUCCESS"
	StatusNoData  = "NO_DATA"
	StatusError   = "ERROR"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Status: StatusSuccess, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Status: StatusSuccess, Data: data})
}

// RespondDeleted echoes the removed id.
func RespondDeleted(c *gin.Context, id uuid.UUID) {
	RespondOK(c, gin.H{"deleted_id": id})
}

// RespondPaginated sends a 200 response with pagination metadata. An empty
// page is still a success but reports NO_DATA.
func RespondPaginated(c *gin.Context, data interface{}, count int, meta PagMeta) {
	if count == 0 {
		c.JSON(http.StatusOK, APIResponse{
			Success: true,
			Status:  StatusNoData,
			Message: "no records found",
			Data:    data,
			Meta:    &meta,
		})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Status: StatusSuccess, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code. 404s
// report NO_DATA; everything else reports ERROR.
func RespondError(c *gin.Context, status int, code, msg string) {
	outcome := StatusError
	if status == http.StatusNotFound {
		outcome = StatusNoData
	}
	c.JSON(status, APIResponse{
		Success: false,
		Status:  outcome,
		Message: msg,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rateErr *parser.RateLimitError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrInventoryNotFound):
		return http.StatusNotFound, "INVENTORY_NOT_FOUND", "inventory item not found"
	case errors.Is(err, domain.ErrQuotationNotFound):
		return http.StatusNotFound, "QUOTATION_NOT_FOUND", "quotation not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists"
	case errors.Is(err, domain.ErrAdminExists):
		return http.StatusConflict, "ADMIN_EXISTS", "an admin account already exists"
	case errors.Is(err, domain.ErrCannotDeleteAdmin):
		return http.StatusBadRequest, "CANNOT_DELETE_ADMIN", "the admin account cannot be deleted"
	case errors.Is(err, domain.ErrEmptyUpdate):
		return http.StatusBadRequest, "EMPTY_UPDATE", "no fields supplied to update"
	case errors.Is(err, domain.ErrCustomerNameRequired):
		return http.StatusBadRequest, "CUSTOMER_NAME_REQUIRED", "customer name is required"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "INVALID_STATUS", "invalid status value"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrNumberingConflict):
		return http.StatusConflict, "NUMBERING_CONFLICT", "could not reserve a document number; please retry"
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests, "RATE_LIMITED", "AI provider is rate limited; retry later"
	case errors.Is(err, domain.ErrDraftUnparseable):
		return http.StatusUnprocessableEntity, "DRAFT_UNPARSEABLE", "could not understand the request text"
	case errors.Is(err, domain.ErrParserNotConfigured):
		return http.StatusServiceUnavailable, "PARSER_NOT_CONFIGURED", "AI drafting is not configured"
	case errors.Is(err, domain.ErrEmailDeliveryDisabled):
		return http.StatusServiceUnavailable, "DELIVERY_DISABLED", "email delivery is not configured"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if wait, ok := parser.RetryAfter(err); ok {
		c.Header("Retry-After", strconv.Itoa(int(wait/time.Second)))
	}
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// tenantFromContext returns the caller's tenant or writes a 401.
func tenantFromContext(c *gin.Context) (uuid.UUID, bool) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return uuid.Nil, false
	}
	return tenantID, true
}

// pathID parses the :id parameter or writes a 400.
func pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination reads offset and limit, clamping limit to 1..100.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// queryBool reads an optional boolean query parameter.
func queryBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
