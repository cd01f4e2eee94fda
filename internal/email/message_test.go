package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quotely/internal/email"
	"quotely/internal/port"
)

func TestBuildDocumentLink(t *testing.T) {
	m := email.BuildDocumentLink(port.DocumentEmail{
		ToEmail:      "ravi@example.com",
		CustomerName: "Ravi",
		BusinessName: "Acme Security",
		DocumentKind: "Invoice",
		Number:       "INV-2026-0007",
		DownloadURL:  "https://files.example.com/inv.pdf?sig=a&b=c",
	})

	assert.Equal(t, "Your invoice INV-2026-0007 from Acme Security", m.Subject)
	assert.Contains(t, m.Text, "Hi Ravi,")
	assert.Contains(t, m.Text, "https://files.example.com/inv.pdf?sig=a&b=c")
	assert.Contains(t, m.HTML, "sig=a&amp;b=c")
	assert.Contains(t, m.HTML, "<strong>INV-2026-0007</strong>")
}

func TestBuildDocumentLink_EscapesCustomerName(t *testing.T) {
	m := email.BuildDocumentLink(port.DocumentEmail{
		CustomerName: "<script>",
		DocumentKind: "quotation",
		Number:       "QT-2026-0001",
		DownloadURL:  "https://x",
	})

	assert.Equal(t, "Your quotation QT-2026-0001", m.Subject)
	assert.NotContains(t, m.HTML, "<script>")
	assert.Contains(t, m.HTML, "Hi &lt;script&gt;")
	assert.Contains(t, m.Text, "from us")
}
