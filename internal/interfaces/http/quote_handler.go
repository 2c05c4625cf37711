package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/application/quote"
)

// QuoteHandler quotation sheets.
type QuoteHandler struct {
	uc *quote.QuoteUseCase
}

// NewQuoteHandler builds the quote handler.
func NewQuoteHandler(uc *quote.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// PDF godoc
// @Summary      Render a quotation sheet
// @Tags         quotes
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        body  body  dto.QuoteRequest  true  "search and selected lines"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotes/pdf [post]
func (h *QuoteHandler) PDF(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	doc, err := h.uc.PDF(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="quote.pdf"`)
	return c.Send(doc)
}
