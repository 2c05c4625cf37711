package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/application/search"
)

// SearchHandler busbar support search.
type SearchHandler struct {
	uc *search.SearchUseCase
}

// NewSearchHandler builds the search handler.
func NewSearchHandler(uc *search.SearchUseCase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// QueryBusbar godoc
// @Summary      Search supports for a busbar configuration
// @Description  Consumes one unit of the caller's daily quota.
// @Tags         search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.QueryBusbarRequest  true  "busbar configuration"
// @Success      200   {object}  dto.QueryBusbarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/queryBusbar [post]
func (h *SearchHandler) QueryBusbar(c *fiber.Ctx) error {
	var in dto.QueryBusbarRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Query(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Options godoc
// @Summary      Search form options
// @Tags         search
// @Produce      json
// @Success      200  {object}  dto.OptionsResponse
// @Router       /api/options [get]
func (h *SearchHandler) Options(c *fiber.Ctx) error {
	return c.JSON(search.Options())
}
