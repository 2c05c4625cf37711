// Package assets resolves, uploads and deletes component images and documents.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/busbar"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

// Links returned to the browser point at the public read endpoints.
const (
	ImageEndpoint = "/api/getImage"
	FileEndpoint  = "/api/getFile"
)

// FileStore storage port (infrastructure/storage).
type FileStore interface {
	Path(rel string) (string, error)
	Exists(rel string) bool
	Save(dir, name string, r io.Reader) (string, error)
	Delete(rel string) error
}

// Upload one multipart part.
type Upload struct {
	Field    string
	Filename string
	Body     io.Reader
}

// AssetUseCase image and document operations.
type AssetUseCase struct {
	store        FileStore
	photoBaseURL string
	log          *logger.Logger
}

// NewAssetUseCase photoBaseURL serves img1Article / img2Article photos when no local image exists.
func NewAssetUseCase(store FileStore, photoBaseURL string, log *logger.Logger) *AssetUseCase {
	return &AssetUseCase{store: store, photoBaseURL: photoBaseURL, log: log}
}

// ImagePath absolute path of a stored image.
func (uc *AssetUseCase) ImagePath(rel string) (string, error) {
	return uc.store.Path(rel)
}

// FilePath absolute path of a stored document.
func (uc *AssetUseCase) FilePath(rel string) (string, error) {
	return uc.store.Path(rel)
}

func link(endpoint, rel string) string {
	return endpoint + "?path=" + url.QueryEscape(rel)
}

func (uc *AssetUseCase) first(candidates []string) (string, bool) {
	for _, c := range candidates {
		if uc.store.Exists(c) {
			return c, true
		}
	}
	return "", false
}

// ResolveImage returns the link for image slot n. Slots 1 and 2 fall back to the
// remote article photo, then every slot falls back to the unknown image.
func (uc *AssetUseCase) ResolveImage(base string, n int, article string) string {
	if rel, ok := uc.first(busbar.ImageCandidates(base, n)); ok {
		return link(ImageEndpoint, rel)
	}
	if n <= 2 {
		if remote := busbar.RemotePhotoURL(uc.photoBaseURL, article); remote != "" {
			return remote
		}
	}
	return busbar.UnknownImage
}

// ResolveDocument returns the link for a document kind, or nil when none exists.
func (uc *AssetUseCase) ResolveDocument(base, kind string) *string {
	rel, ok := uc.first(busbar.DocumentCandidates(base, kind))
	if !ok {
		return nil
	}
	l := link(FileEndpoint, rel)
	return &l
}

// ComponentAssets GET /api/components/:id/assets.
func (uc *AssetUseCase) ComponentAssets(_ context.Context, componentID string, in dto.ComponentAssetsRequest) (*dto.ComponentAssetsResponse, error) {
	componentID = strings.TrimSpace(componentID)
	if componentID == "" {
		return nil, fmt.Errorf("%w: component_id is required", domain.ErrInvalidInput)
	}
	base := busbar.AssetBase(componentID, in.Resmini, in.NbPhase)
	return &dto.ComponentAssetsResponse{
		Images: []string{
			uc.ResolveImage(base, 1, in.Img1),
			uc.ResolveImage(base, 2, in.Img2),
			uc.ResolveImage(base, 3, ""),
		},
		Documents: dto.DocumentLinksDTO{
			Doc:   uc.ResolveDocument(base, busbar.DocDatasheet),
			TwoD:  uc.ResolveDocument(base, busbar.Doc2D),
			Three: uc.ResolveDocument(base, busbar.Doc3D),
		},
	}, nil
}

var imageFields = map[string]bool{"img1": true, "img2": true, "img3": true}

// UploadImages stores img1..img3 under products/.
func (uc *AssetUseCase) UploadImages(_ context.Context, files []Upload) (*dto.UploadResponse, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no image uploaded", domain.ErrInvalidInput)
	}
	for _, f := range files {
		if !imageFields[f.Field] {
			return nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, f.Field)
		}
		if ext := strings.ToLower(path.Ext(f.Filename)); ext != ".jpg" && ext != ".png" {
			return nil, fmt.Errorf("%w: images must be .jpg or .png", domain.ErrUnsupportedFile)
		}
	}
	return uc.save(busbar.ProductsDir, files, "Images uploaded successfully")
}

// UploadFiles validates doc, two_d and three_d, then stores them under documents/.
// Nothing is written when one part is rejected.
func (uc *AssetUseCase) UploadFiles(_ context.Context, files []Upload) (*dto.UploadResponse, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", domain.ErrInvalidInput)
	}
	for _, f := range files {
		if err := busbar.ValidateDocumentUpload(f.Field, f.Filename); err != nil {
			return nil, err
		}
	}
	return uc.save(busbar.DocumentsDir, files, "Files uploaded successfully")
}

func (uc *AssetUseCase) save(dir string, files []Upload, msg string) (*dto.UploadResponse, error) {
	out := &dto.UploadResponse{Message: msg, Files: make(map[string]string, len(files))}
	for _, f := range files {
		rel, err := uc.store.Save(dir, f.Filename, f.Body)
		if err != nil {
			return nil, err
		}
		out.Files[f.Field] = rel
		uc.log.Info().Str("field", f.Field).Str("path", rel).Msg("asset stored")
	}
	return out, nil
}

// DeleteImage removes a stored image.
func (uc *AssetUseCase) DeleteImage(_ context.Context, rel string) error {
	return uc.delete(rel)
}

// DeleteFile removes a stored document.
func (uc *AssetUseCase) DeleteFile(_ context.Context, rel string) error {
	return uc.delete(rel)
}

func (uc *AssetUseCase) delete(rel string) error {
	if err := uc.store.Delete(rel); err != nil {
		return err
	}
	uc.log.Info().Str("path", rel).Msg("asset deleted")
	return nil
}
