package numbering_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"quotely/internal/domain"
	"quotely/internal/numbering"
)

func TestPrefix(t *testing.T) {
	assert.Equal(t, "QT", numbering.Prefix(domain.DocumentTypeQuotation))
	assert.Equal(t, "INV", numbering.Prefix(domain.DocumentTypeInvoice))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		year   int
		seq    int
		want   string
	}{
		{"first of year", "QT", 2026, 1, "QT-2026-0001"},
		{"invoice", "INV", 2025, 42, "INV-2025-0042"},
		{"four digits", "QT", 2026, 9999, "QT-2026-9999"},
		{"overflow widens", "QT", 2026, 10000, "QT-2026-10000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, numbering.Format(tt.prefix, tt.year, tt.seq))
		})
	}
}

func TestPattern(t *testing.T) {
	assert.Equal(t, "INV-2026-%", numbering.Pattern("INV", 2026))
}

func TestNext_StrictlyIncreasing(t *testing.T) {
	for prev := 0; prev < 25; prev++ {
		assert.Equal(t, numbering.Format("QT", 2026, prev+1), numbering.Next("QT", 2026, prev))
	}
	assert.Equal(t, "INV-2026-10000", numbering.Next("INV", 2026, 9999))
	assert.Equal(t, "QT-2026-0001", numbering.Next("QT", 2026, 0))
}

func TestLockKey_ScopedByTenantTypeYear(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	assert.Equal(t,
		numbering.LockKey(a, domain.DocumentTypeQuotation, 2026),
		numbering.LockKey(a, domain.DocumentTypeQuotation, 2026))
	assert.NotEqual(t,
		numbering.LockKey(a, domain.DocumentTypeQuotation, 2026),
		numbering.LockKey(b, domain.DocumentTypeQuotation, 2026))
	assert.NotEqual(t,
		numbering.LockKey(a, domain.DocumentTypeQuotation, 2026),
		numbering.LockKey(a, domain.DocumentTypeInvoice, 2026))
	assert.NotEqual(t,
		numbering.LockKey(a, domain.DocumentTypeQuotation, 2026),
		numbering.LockKey(a, domain.DocumentTypeQuotation, 2027))
}
