package http

import (
	"context"
	"mime/multipart"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/berlivn/eriflex-api/internal/application/assets"
	"github.com/berlivn/eriflex-api/internal/application/dto"
)

// AssetHandler images and documents.
type AssetHandler struct {
	uc *assets.AssetUseCase
}

// NewAssetHandler builds the asset handler.
func NewAssetHandler(uc *assets.AssetUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// GetImage godoc
// @Summary      Serve a stored image
// @Tags         assets
// @Produce      octet-stream
// @Param        path  query  string  true  "path under the asset root, e.g. /products/x-1.jpg"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/getImage [get]
func (h *AssetHandler) GetImage(c *fiber.Ctx) error {
	abs, err := h.uc.ImagePath(c.Query("path"))
	if err != nil {
		return respondError(c, err)
	}
	return c.SendFile(abs)
}

// GetFile godoc
// @Summary      Serve a stored document
// @Tags         assets
// @Produce      octet-stream
// @Param        path  query  string  true  "path under the asset root, e.g. /documents/x-doc.pdf"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/getFile [get]
func (h *AssetHandler) GetFile(c *fiber.Ctx) error {
	abs, err := h.uc.FilePath(c.Query("path"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Download(abs)
}

// ComponentAssets godoc
// @Summary      Image and document links of a component
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true   "component key"
// @Param        nbphase  query  int     true   "bars per phase"
// @Param        resmini  query  int     false  "resmini"
// @Param        img1     query  string  false  "img1Article"
// @Param        img2     query  string  false  "img2Article"
// @Success      200  {object}  dto.ComponentAssetsResponse
// @Router       /api/components/{id}/assets [get]
func (h *AssetHandler) ComponentAssets(c *fiber.Ctx) error {
	var in dto.ComponentAssetsRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ComponentAssets(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadImages godoc
// @Summary      Upload component images (img1..img3)
// @Tags         assets
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        img1  formData  file  false  "first image"
// @Param        img2  formData  file  false  "second image"
// @Param        img3  formData  file  false  "third image"
// @Success      200  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/uploadImages [post]
func (h *AssetHandler) UploadImages(c *fiber.Ctx) error {
	return h.upload(c, h.uc.UploadImages)
}

// UploadFiles godoc
// @Summary      Upload component documents (doc, two_d, three_d)
// @Tags         assets
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        doc      formData  file  false  "datasheet (pdf, doc, docx)"
// @Param        two_d    formData  file  false  "2D drawing (pdf, doc, docx)"
// @Param        three_d  formData  file  false  "3D model (stp, step)"
// @Success      200  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/uploadFiles [post]
func (h *AssetHandler) UploadFiles(c *fiber.Ctx) error {
	return h.upload(c, h.uc.UploadFiles)
}

type uploadFunc func(ctx context.Context, files []assets.Upload) (*dto.UploadResponse, error)

func (h *AssetHandler) upload(c *fiber.Ctx, save uploadFunc) error {
	form, err := c.MultipartForm()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "multipart form expected")
	}
	files, closeAll, err := openParts(form)
	defer closeAll()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "unreadable file part")
	}
	if len(files) == 0 {
		return writeError(c, fiber.StatusBadRequest, "VALIDATION", "no files uploaded")
	}
	out, err := save(c.UserContext(), files)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// openParts opens every file part in field order. closeAll is always safe to call.
func openParts(form *multipart.Form) ([]assets.Upload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []assets.Upload
	for _, field := range fields {
		for _, fh := range form.File[field] {
			f, err := fh.Open()
			if err != nil {
				return nil, closeAll, err
			}
			opened = append(opened, f)
			out = append(out, assets.Upload{Field: field, Filename: fh.Filename, Body: f})
		}
	}
	return out, closeAll, nil
}

// DeleteImage godoc
// @Summary      Delete a stored image
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.DeleteImageRequest  true  "image path"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deleteImage [delete]
func (h *AssetHandler) DeleteImage(c *fiber.Ctx) error {
	var in dto.DeleteImageRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	if err := h.uc.DeleteImage(c.UserContext(), in.ImagePath); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Image deleted successfully"})
}

// DeleteFile godoc
// @Summary      Delete a stored document
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.DeleteFileRequest  true  "file path"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deleteFile [delete]
func (h *AssetHandler) DeleteFile(c *fiber.Ctx) error {
	var in dto.DeleteFileRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	if err := h.uc.DeleteFile(c.UserContext(), in.FilePath); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "File deleted successfully"})
}
