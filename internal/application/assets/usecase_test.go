package assets_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berlivn/eriflex-api/internal/application/assets"
	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/infrastructure/storage"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

const photos = "https://photos.test/articles"

func newAssets(t *testing.T) (*assets.AssetUseCase, *storage.LocalStore) {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return assets.NewAssetUseCase(store, photos, logger.Nop()), store
}

func put(t *testing.T, store *storage.LocalStore, dir, name string) {
	t.Helper()
	_, err := store.Save(dir, name, strings.NewReader("x"))
	require.NoError(t, err)
}

func TestComponentAssets_Fallbacks(t *testing.T) {
	uc, store := newAssets(t)
	put(t, store, "products", "GPS-1700-1-1.png")
	put(t, store, "documents", "GPS-1700-1-doc.docx")
	put(t, store, "documents", "GPS-1700-1-3d.step")

	resp, err := uc.ComponentAssets(context.Background(), "GPS", dto.ComponentAssetsRequest{
		NbPhase: 1, Resmini: 170, Img1: "A1", Img2: "A2",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/getImage?path=%2Fproducts%2FGPS-1700-1-1.png",
		photos + "/A2.jpg",
		"/unknown.jpg",
	}, resp.Images)

	require.NotNil(t, resp.Documents.Doc)
	assert.Equal(t, "/api/getFile?path=%2Fdocuments%2FGPS-1700-1-doc.docx", *resp.Documents.Doc)
	assert.Nil(t, resp.Documents.TwoD)
	require.NotNil(t, resp.Documents.Three)
	assert.Contains(t, *resp.Documents.Three, "GPS-1700-1-3d.step")
}

func TestComponentAssets_JpgWinsOverPng(t *testing.T) {
	uc, store := newAssets(t)
	put(t, store, "products", "GPS-1700-1-2.png")
	put(t, store, "products", "GPS-1700-1-2.jpg")

	assert.Equal(t, "/api/getImage?path=%2Fproducts%2FGPS-1700-1-2.jpg", uc.ResolveImage("GPS-1700-1", 2, "A2"))
	assert.Equal(t, "/unknown.jpg", uc.ResolveImage("GPS-1700-1", 1, ""))
}

func TestComponentAssets_RequiresID(t *testing.T) {
	uc, _ := newAssets(t)
	_, err := uc.ComponentAssets(context.Background(), " ", dto.ComponentAssetsRequest{NbPhase: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadImages(t *testing.T) {
	uc, _ := newAssets(t)
	ctx := context.Background()

	resp, err := uc.UploadImages(ctx, []assets.Upload{
		{Field: "img1", Filename: "GPS-1700-1-1.jpg", Body: strings.NewReader("a")},
		{Field: "img3", Filename: "GPS-1700-1-3.PNG", Body: strings.NewReader("b")},
	})
	require.NoError(t, err)
	assert.Equal(t, "/products/GPS-1700-1-1.jpg", resp.Files["img1"])

	path, err := uc.ImagePath(resp.Files["img3"])
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "GPS-1700-1-3.PNG"))

	_, err = uc.UploadImages(ctx, []assets.Upload{{Field: "img4", Filename: "x.jpg", Body: strings.NewReader("")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UploadImages(ctx, []assets.Upload{{Field: "img1", Filename: "x.gif", Body: strings.NewReader("")}})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
	_, err = uc.UploadImages(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadFiles_ValidatesBeforeWriting(t *testing.T) {
	uc, store := newAssets(t)
	ctx := context.Background()

	_, err := uc.UploadFiles(ctx, []assets.Upload{
		{Field: "doc", Filename: "GPS-1700-1-doc.pdf", Body: strings.NewReader("a")},
		{Field: "three_d", Filename: "GPS-1700-1-3d.pdf", Body: strings.NewReader("b")},
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
	assert.False(t, store.Exists("documents/GPS-1700-1-doc.pdf"))

	resp, err := uc.UploadFiles(ctx, []assets.Upload{
		{Field: "two_d", Filename: "GPS-1700-1-2d.pdf", Body: strings.NewReader("a")},
		{Field: "three_d", Filename: "GPS-1700-1-3d.stp", Body: strings.NewReader("b")},
	})
	require.NoError(t, err)
	assert.Equal(t, "/documents/GPS-1700-1-3d.stp", resp.Files["three_d"])
}

func TestDelete(t *testing.T) {
	uc, store := newAssets(t)
	ctx := context.Background()
	put(t, store, "products", "GPS-1700-1-1.jpg")

	require.NoError(t, uc.DeleteImage(ctx, "/products/GPS-1700-1-1.jpg"))
	assert.ErrorIs(t, uc.DeleteImage(ctx, "/products/GPS-1700-1-1.jpg"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteFile(ctx, "../../etc/passwd"), domain.ErrNotFound)
}
