// Package quote prices a selection of supports and renders it as a PDF sheet.
package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/berlivn/eriflex-api/internal/application/auth"
	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/busbar"
)

// DefaultTitle printed when the request carries none.
const DefaultTitle = "Busbar support quotation"

// PriceLookup catalog price of one component (catalog.CatalogUseCase).
type PriceLookup interface {
	UnitPrice(ctx context.Context, componentID string, nbphase int) (decimal.Decimal, string, error)
}

// Renderer turns a priced quote into a document.
type Renderer interface {
	RenderQuote(ctx context.Context, q *dto.Quote) ([]byte, error)
}

// QuoteUseCase POST /api/quotes/pdf.
type QuoteUseCase struct {
	prices   PriceLookup
	profiles auth.ProfileReader
	renderer Renderer
	now      func() time.Time
}

// NewQuoteUseCase builds the use case. profiles may be nil.
func NewQuoteUseCase(prices PriceLookup, profiles auth.ProfileReader, renderer Renderer) *QuoteUseCase {
	return &QuoteUseCase{prices: prices, profiles: profiles, renderer: renderer, now: time.Now}
}

// Build prices every line. Explicit unit prices win over the catalog.
func (uc *QuoteUseCase) Build(ctx context.Context, userID string, in dto.QuoteRequest) (*dto.Quote, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one line is required", domain.ErrInvalidInput)
	}
	q := &dto.Quote{
		Title:      strings.TrimSpace(in.Title),
		Date:       uc.now().UTC(),
		Search:     in.Search,
		Ipk:        busbar.PeakCurrent(float64(busbar.ClampIcc(in.Search.Icc))),
		Lines:      make([]dto.QuoteLine, 0, len(in.Lines)),
		GrandTotal: decimal.Zero,
	}
	if q.Title == "" {
		q.Title = DefaultTitle
	}
	if userID != "" && uc.profiles != nil {
		p, err := uc.profiles.Profile(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			q.Customer = strings.TrimSpace(p.FirstName + " " + p.LastName)
			q.Company = p.CompanyName
		}
	}

	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
		}
		price, info, err := uc.prices.UnitPrice(ctx, l.ComponentID, l.NbPhase)
		if err != nil {
			return nil, err
		}
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: unit_price must not be negative", domain.ErrInvalidInput)
		}
		price = price.Round(2)
		total := price.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
		desc := info
		if desc == "" {
			desc = l.ComponentID
		}
		q.Lines = append(q.Lines, dto.QuoteLine{
			ComponentID: l.ComponentID,
			Description: desc,
			NbPhase:     l.NbPhase,
			Quantity:    l.Quantity,
			UnitPrice:   price,
			Total:       total,
		})
		q.GrandTotal = q.GrandTotal.Add(total)
	}
	return q, nil
}

// PDF builds then renders the quote.
func (uc *QuoteUseCase) PDF(ctx context.Context, userID string, in dto.QuoteRequest) ([]byte, error) {
	q, err := uc.Build(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderQuote(ctx, q)
}
