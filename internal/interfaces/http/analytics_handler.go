package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/berlivn/eriflex-api/internal/application/analytics"
	"github.com/berlivn/eriflex-api/internal/application/dto"
)

// AnalyticsHandler admin usage reports.
type AnalyticsHandler struct {
	uc *analytics.AnalyticsUseCase
}

// NewAnalyticsHandler builds the analytics handler.
func NewAnalyticsHandler(uc *analytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Overview godoc
// @Summary      Daily stats, totals and most active users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        days            query  int  false  "window in days (1..365, default 7)"
// @Param        activity_limit  query  int  false  "users in user_activity (1..100, default 20)"
// @Success      200  {object}  dto.AnalyticsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /admin/analytics [get]
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	var in dto.AnalyticsRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.Overview(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SearchLogs godoc
// @Summary      Search counters per user and day
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "page size (1..500, default 100)"
// @Param        offset  query  int  false  "offset"
// @Success      200  {object}  dto.SearchLogListResponse
// @Router       /admin/search-logs [get]
func (h *AnalyticsHandler) SearchLogs(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := bindQuery(c, &page); !ok {
		return err
	}
	out, err := h.uc.SearchLogs(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UserSearchLogs godoc
// @Summary      Daily search counters of one user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path   string  true   "user id"
// @Param        days     query  int     false  "window in days (1..365, default 30)"
// @Success      200  {object}  dto.UserSearchLogsResponse
// @Router       /admin/search-logs/{user_id} [get]
func (h *AnalyticsHandler) UserSearchLogs(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	if days < 1 || days > 365 {
		return writeError(c, fiber.StatusBadRequest, "VALIDATION", "days must be between 1 and 365")
	}
	out, err := h.uc.UserSearchLogs(c.UserContext(), c.Params("user_id"), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
