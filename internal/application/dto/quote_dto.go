package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteRequest body of POST /api/quotes/pdf.
type QuoteRequest struct {
	Title  string             `json:"title" validate:"max=200"`
	Search QuoteSearchDTO     `json:"search"`
	Lines  []QuoteLineRequest `json:"lines" validate:"required,min=1,max=200,dive"`
}

// QuoteSearchDTO search parameters printed on the sheet.
type QuoteSearchDTO struct {
	PerPhase  string `json:"perPhase" validate:"max=20"`
	Thickness string `json:"thickness" validate:"max=10"`
	Width     string `json:"width" validate:"max=10"`
	Poles     string `json:"poles" validate:"max=10"`
	Shape     string `json:"shape" validate:"max=20"`
	Icc       int    `json:"icc" validate:"min=0"`
}

// QuoteLineRequest a line without unit_price uses the catalog price.
type QuoteLineRequest struct {
	ComponentID string           `json:"component_id" validate:"required,max=100"`
	NbPhase     int              `json:"nbphase" validate:"required,min=1,max=10"`
	Quantity    int              `json:"quantity" validate:"required,min=1"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// QuoteLine priced line.
type QuoteLine struct {
	ComponentID string
	Description string
	NbPhase     int
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Quote priced sheet handed to the PDF renderer.
type Quote struct {
	Title      string
	Date       time.Time
	Customer   string
	Company    string
	Search     QuoteSearchDTO
	Ipk        float64
	Lines      []QuoteLine
	GrandTotal decimal.Decimal
}
