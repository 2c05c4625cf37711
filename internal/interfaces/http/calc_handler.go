package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/berlivn/eriflex-api/internal/application/calc"
	"github.com/berlivn/eriflex-api/internal/application/dto"
)

// CalcHandler ASPExcel proxy endpoints.
type CalcHandler struct {
	uc *calc.CalcUseCase
}

// NewCalcHandler builds the calc handler.
func NewCalcHandler(uc *calc.CalcUseCase) *CalcHandler {
	return &CalcHandler{uc: uc}
}

// CalcExcel godoc
// @Summary      Cached L for a calculation key
// @Tags         calc
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CalcExcelRequest  true  "calculation key"
// @Success      200   {object}  dto.CalcExcelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calcExcel [post]
func (h *CalcHandler) CalcExcel(c *fiber.Ctx) error {
	var in dto.CalcExcelRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CalcExcel(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SendAspExcel godoc
// @Summary      Force an ASPExcel call and store the answer
// @Tags         calc
// @Produce      json
// @Security     BearerAuth
// @Param        W      query  number  true  "width"
// @Param        T      query  number  true  "thickness"
// @Param        B      query  int     true  "bars per phase"
// @Param        Angle  query  number  true  "angle"
// @Param        a      query  number  true  "spacing"
// @Param        Icc    query  number  true  "short-circuit current"
// @Param        Force  query  number  true  "force"
// @Param        poles  query  int     true  "poles"
// @Success      200  {object}  dto.SendAspExcelResponse
// @Router       /api/sendAspExcel [get]
func (h *CalcHandler) SendAspExcel(c *fiber.Ctx) error {
	var in dto.SendAspExcelRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.SendAspExcel(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
