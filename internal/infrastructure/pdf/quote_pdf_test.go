package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/infrastructure/pdf"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0.00":       "0.00",
		"999.99":     "999.99",
		"1000.00":    "1,000.00",
		"1234567.50": "1,234,567.50",
		"-25000.10":  "-25,000.10",
		"125000":     "125,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.FormatMoney(in), in)
	}
}

func TestQuoteRenderer_RenderQuote(t *testing.T) {
	q := &dto.Quote{
		Title:    "Quotation",
		Date:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Customer: "An Nguyen",
		Company:  "Acme",
		Search:   dto.QuoteSearchDTO{PerPhase: "1 Busbar", Thickness: "5", Width: "50", Poles: "Three", Shape: "Flat", Icc: 50},
		Ipk:      105,
		Lines: []dto.QuoteLine{
			{ComponentID: "GPS", Description: "Support", NbPhase: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("12.50"), Total: decimal.RequireFromString("37.50")},
		},
		GrandTotal: decimal.RequireFromString("37.50"),
	}

	out, err := pdf.NewQuoteRenderer("eriflex-api").RenderQuote(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
