package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrCannotDeleteAdmin  = errors.New("the admin account cannot be deleted")
	ErrAdminExists        = errors.New("an admin account already exists")
	ErrUploadFailed       = errors.New("file upload to storage failed")

	ErrInventoryNotFound     = errors.New("inventory item not found")
	ErrQuotationNotFound     = errors.New("quotation not found")
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrEmptyUpdate           = errors.New("no fields supplied to update")
	ErrCustomerNameRequired  = errors.New("customer name is required")
	ErrInvalidStatus         = errors.New("invalid status value")
	ErrNumberingConflict     = errors.New("could not reserve a unique document number")
	ErrParserNotConfigured   = errors.New("AI parser is not configured")
	ErrDraftUnparseable      = errors.New("AI response could not be parsed")
	ErrEmailDeliveryDisabled = errors.New("email delivery is not configured")
	ErrUnsupportedFormat     = errors.New("unsupported export format")
)
