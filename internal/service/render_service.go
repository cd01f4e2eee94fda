package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quotely/internal/config"
	"quotely/internal/domain"
	"quotely/internal/pdf"
	"quotely/internal/port"
	"quotely/internal/totals"
)

// RenderOptions controls optional parts of a rendered document. A nil
// InfoPage uses the per-type default: on for quotations, off for invoices.
type RenderOptions struct {
	InfoPage *bool
}

// AdHocItem is one row of an unsaved document.
type AdHocItem struct {
	ItemName  string          `json:"item_name" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// AdHocPDFInput describes a document rendered straight from the request
// body, without touching storage.
type AdHocPDFInput struct {
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	DocumentDate    *Date           `json:"document_date"`
	Number          string          `json:"number"`
	ValidUntil      *Date           `json:"valid_until"`
	DueDate         *Date           `json:"due_date"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Notes           string          `json:"notes"`
	Items           []AdHocItem     `json:"items" binding:"dive"`
	IncludeInfoPage *bool           `json:"include_info_page"`
}

// RenderedDocument is an encoded PDF plus the metadata needed to serve,
// archive or email it.
type RenderedDocument struct {
	Type         domain.DocumentType
	Number       string
	CustomerName string
	BusinessName string
	Filename     string
	Content      []byte
}

// RenderService produces PDFs for stored and ad-hoc documents.
type RenderService interface {
	QuotationPDF(ctx context.Context, tenantID, id uuid.UUID, opts RenderOptions) (*RenderedDocument, error)
	InvoicePDF(ctx context.Context, tenantID, id uuid.UUID, opts RenderOptions) (*RenderedDocument, error)
	AdHocPDF(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, input AdHocPDFInput) (*RenderedDocument, error)
}

type renderService struct {
	quotationRepo port.QuotationRepository
	invoiceRepo   port.InvoiceRepository
	userRepo      port.UserRepository
	business      config.BusinessConfig
	opts          docOptions
}

// NewRenderService creates a RenderService. The letterhead comes from the
// tenant's profile; empty profile fields fall back to business.
func NewRenderService(
	quotationRepo port.QuotationRepository,
	invoiceRepo port.InvoiceRepository,
	userRepo port.UserRepository,
	business config.BusinessConfig,
	opts ...Option,
) RenderService {
	return &renderService{
		quotationRepo: quotationRepo,
		invoiceRepo:   invoiceRepo,
		userRepo:      userRepo,
		business:      business,
		opts:          applyOptions(opts),
	}
}

func (s *renderService) QuotationPDF(ctx context.Context, tenantID, id uuid.UUID, opts RenderOptions) (*RenderedDocument, error) {
	q, err := s.quotationRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	data := documentData(pdf.KindEstimate, &q.Document)
	data.ValidUntil = q.ValidUntil
	data.InfoPage = boolOr(opts.InfoPage, true)
	return s.render(ctx, tenantID, domain.DocumentTypeQuotation, data)
}

func (s *renderService) InvoicePDF(ctx context.Context, tenantID, id uuid.UUID, opts RenderOptions) (*RenderedDocument, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	data := documentData(pdf.KindInvoice, &inv.Document)
	data.DueDate = inv.DueDate
	data.PaymentStatus = string(inv.PaymentStatus)
	data.InfoPage = boolOr(opts.InfoPage, false)
	return s.render(ctx, tenantID, domain.DocumentTypeInvoice, data)
}

func (s *renderService) AdHocPDF(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, input AdHocPDFInput) (*RenderedDocument, error) {
	kind := pdf.KindEstimate
	infoDefault := true
	if docType == domain.DocumentTypeInvoice {
		kind = pdf.KindInvoice
		infoDefault = false
	}

	lines := make([]totals.Line, len(input.Items))
	items := make([]pdf.Item, len(input.Items))
	for i, it := range input.Items {
		lines[i] = totals.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
		items[i] = pdf.Item{
			Description: strings.TrimSpace(it.ItemName),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       totals.LineTotal(it.Quantity, it.UnitPrice),
		}
	}
	res := totals.Compute(lines, input.TaxPercent, input.DiscountAmount)

	date := truncateToDate(s.opts.now())
	if input.DocumentDate != nil {
		date = input.DocumentDate.Time
	}

	data := &pdf.DocumentData{
		Kind:       kind,
		Number:     strings.TrimSpace(input.Number),
		Date:       date,
		ValidUntil: dateOrNil(input.ValidUntil),
		DueDate:    dateOrNil(input.DueDate),
		Client: pdf.ClientData{
			Name:    strings.TrimSpace(input.CustomerName),
			Phone:   strings.TrimSpace(input.CustomerPhone),
			Address: strings.TrimSpace(input.CustomerAddress),
		},
		Items:      items,
		Subtotal:   res.Subtotal,
		TaxPercent: input.TaxPercent,
		TaxAmount:  res.TaxAmount,
		Discount:   input.DiscountAmount,
		GrandTotal: res.TotalAmount,
		Notes:      input.Notes,
		InfoPage:   boolOr(input.IncludeInfoPage, infoDefault),
	}
	return s.render(ctx, tenantID, docType, data)
}

func (s *renderService) render(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, data *pdf.DocumentData) (*RenderedDocument, error) {
	company, err := s.letterhead(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	data.Company = company
	data.Highlights = s.business.Highlights

	content, err := pdf.Render(data)
	if err != nil {
		return nil, err
	}
	return &RenderedDocument{
		Type:         docType,
		Number:       data.Number,
		CustomerName: data.Client.Name,
		BusinessName: company.Name,
		Filename:     pdfFilename(docType, data.Number),
		Content:      content,
	}, nil
}

// letterhead merges the tenant's business profile over the configured
// defaults, field by field.
func (s *renderService) letterhead(ctx context.Context, tenantID uuid.UUID) (pdf.CompanyData, error) {
	c := pdf.CompanyData{
		Name:    s.business.Name,
		Address: s.business.Address,
		Phone:   s.business.Phone,
		Email:   s.business.Email,
	}
	if s.userRepo == nil {
		return c, nil
	}
	u, err := s.userRepo.GetByID(ctx, tenantID)
	if err != nil {
		return pdf.CompanyData{}, fmt.Errorf("loading letterhead: %w", err)
	}
	c.Name = firstNonEmpty(u.BusinessName, c.Name)
	c.Address = firstNonEmpty(u.Address, c.Address)
	c.Phone = firstNonEmpty(u.Phone, c.Phone)
	c.Email = firstNonEmpty(u.Email, c.Email)
	return c, nil
}

func documentData(kind pdf.Kind, doc *domain.Document) *pdf.DocumentData {
	items := make([]pdf.Item, len(doc.Items))
	for i, it := range doc.Items {
		items[i] = pdf.Item{
			Description: it.ItemName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.TotalPrice,
		}
	}
	return &pdf.DocumentData{
		Kind:   kind,
		Number: doc.Number,
		Date:   doc.DocumentDate,
		Client: pdf.ClientData{
			Name:    doc.CustomerName,
			Phone:   doc.CustomerPhone,
			Address: doc.CustomerAddress,
		},
		Items:      items,
		Subtotal:   doc.Subtotal,
		TaxPercent: doc.TaxPercent,
		TaxAmount:  doc.TaxAmount,
		Discount:   doc.DiscountAmount,
		GrandTotal: doc.TotalAmount,
		Notes:      doc.Notes,
	}
}

func pdfFilename(docType domain.DocumentType, number string) string {
	if number == "" {
		number = "draft"
	}
	prefix := "Quotation"
	if docType == domain.DocumentTypeInvoice {
		prefix = "Invoice"
	}
	return fmt.Sprintf("%s_%s.pdf", prefix, number)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
