package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/berlivn/eriflex-api/internal/application/catalog"
	"github.com/berlivn/eriflex-api/internal/application/dto"
)

// CatalogHandler component info and variants.
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler builds the catalog handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// GetComponents godoc
// @Summary      Component info rows and variant summary
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        component_id  query  string  true  "component key"
// @Param        nbphase       query  int     true  "bars per phase"
// @Success      200  {object}  dto.ComponentsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/getComponents [get]
func (h *CatalogHandler) GetComponents(c *fiber.Ctx) error {
	var key dto.ComponentKeyRequest
	if ok, err := bindQuery(c, &key); !ok {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), key)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetComponentsList godoc
// @Summary      Variant summary of a component
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        component_id  query  string  true  "component key"
// @Param        nbphase       query  int     true  "bars per phase"
// @Success      200  {object}  dto.ComponentListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/getComponentsList [get]
func (h *CatalogHandler) GetComponentsList(c *fiber.Ctx) error {
	var key dto.ComponentKeyRequest
	if ok, err := bindQuery(c, &key); !ok {
		return err
	}
	out, err := h.uc.Summary(c.UserContext(), key)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateComponent godoc
// @Summary      Create a component with its variant combinations
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ComponentRequest  true  "info and variant axes"
// @Success      201   {object}  dto.ComponentWriteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/createComponent [post]
func (h *CatalogHandler) CreateComponent(c *fiber.Ctx) error {
	var in dto.ComponentRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateComponent godoc
// @Summary      Update a component and replace its variants
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ComponentRequest  true  "info and variant axes"
// @Success      200   {object}  dto.ComponentWriteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/updateComponent [post]
func (h *CatalogHandler) UpdateComponent(c *fiber.Ctx) error {
	var in dto.ComponentRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteComponent godoc
// @Summary      Delete a component and its variants
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ComponentKeyRequest  true  "component key"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deleteComponent [delete]
func (h *CatalogHandler) DeleteComponent(c *fiber.Ctx) error {
	var key dto.ComponentKeyRequest
	if ok, err := bindBody(c, &key); !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), key); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Component deleted successfully"})
}
