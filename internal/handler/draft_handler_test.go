package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quotely/internal/domain"
	"quotely/internal/handler"
	"quotely/internal/parser"
	"quotely/internal/service"
	"quotely/mocks"
)

func TestDraftHandler_QuotationDraft(t *testing.T) {
	svc := new(mocks.MockDraftService)
	h := handler.NewDraftHandler(svc)
	tenantID := uuid.New()

	draft := &domain.QuotationDraft{CustomerName: "Ravi", Items: []domain.DraftItem{}, Provider: "claude"}
	svc.On("DraftQuotation", mock.Anything, tenantID, service.DraftQuotationInput{Text: "Ravi needs 4 cameras"}).
		Return(draft, nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ai/quotation-draft", map[string]string{
		"raw_text": "Ravi needs 4 cameras",
	})
	setAuthContext(c, tenantID, tenantID, "member")

	h.QuotationDraft(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDraftHandler_MissingText(t *testing.T) {
	svc := new(mocks.MockDraftService)
	h := handler.NewDraftHandler(svc)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ai/quotation-draft", map[string]string{})
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.QuotationDraft(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftHandler_RateLimited(t *testing.T) {
	svc := new(mocks.MockDraftService)
	h := handler.NewDraftHandler(svc)
	tenantID := uuid.New()

	svc.On("DraftQuotation", mock.Anything, tenantID, mock.Anything).
		Return(nil, parser.NewRateLimitError("openai", errors.New("too many requests"), 0))

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ai/quotation-draft", map[string]string{"raw_text": "hi"})
	setAuthContext(c, tenantID, tenantID, "member")

	h.QuotationDraft(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestDraftHandler_NotConfigured(t *testing.T) {
	svc := new(mocks.MockDraftService)
	h := handler.NewDraftHandler(svc)
	tenantID := uuid.New()

	svc.On("DraftQuotation", mock.Anything, tenantID, mock.Anything).Return(nil, domain.ErrParserNotConfigured)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ai/quotation-draft", map[string]string{"raw_text": "hi"})
	setAuthContext(c, tenantID, tenantID, "member")

	h.QuotationDraft(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
