package busbar

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/berlivn/eriflex-api/internal/domain"
)

// Storage folders under the assets root.
const (
	ProductsDir  = "products"
	DocumentsDir = "documents"
	UnknownImage = "/unknown.jpg"
)

// Document kinds attached to a component.
const (
	DocDatasheet = "doc"
	Doc2D        = "2d"
	Doc3D        = "3d"
)

var (
	imageExts     = []string{"jpg", "png"}
	datasheetExts = []string{"pdf", "doc", "docx"}
	model3DExts   = []string{"stp", "step", "obj", "pdf", "txt"}
)

// AssetBase is "{componentID}-{resmini*10}-{nbphase}".
func AssetBase(componentID string, resmini, nbphase int) string {
	return fmt.Sprintf("%s-%d-%d", componentID, resmini*10, nbphase)
}

// ImageCandidates returns the paths tried, in order, for image slot n (1..3).
func ImageCandidates(base string, n int) []string {
	out := make([]string, 0, len(imageExts))
	for _, ext := range imageExts {
		out = append(out, fmt.Sprintf("/%s/%s-%d.%s", ProductsDir, base, n, ext))
	}
	return out
}

// DocumentCandidates returns the paths tried, in order, for a document kind.
func DocumentCandidates(base, kind string) []string {
	exts := datasheetExts
	if kind == Doc3D {
		exts = model3DExts
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, fmt.Sprintf("/%s/%s-%s.%s", DocumentsDir, base, kind, ext))
	}
	return out
}

// RemotePhotoURL builds the catalog photo URL for an article, or "" when article is empty.
func RemotePhotoURL(baseURL, article string) string {
	if article == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + article + ".jpg"
}

// Upload fields accepted for documents.
const (
	FieldDoc    = "doc"
	FieldTwoD   = "two_d"
	FieldThreeD = "three_d"
)

var allowedUploadExts = map[string]bool{".pdf": true, ".doc": true, ".docx": true, ".stp": true, ".step": true}

// ValidateDocumentUpload checks filename against the rules of field.
// 3D files must be STEP; datasheets and 2D drawings must be PDF or Word.
func ValidateDocumentUpload(field, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExts[ext] {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, ext)
	}
	switch field {
	case FieldThreeD:
		if ext != ".stp" && ext != ".step" {
			return fmt.Errorf("%w: 3D file must be .stp or .step", domain.ErrUnsupportedFile)
		}
	case FieldDoc, FieldTwoD:
		if ext != ".pdf" && ext != ".doc" && ext != ".docx" {
			return fmt.Errorf("%w: %s must be .pdf, .doc or .docx", domain.ErrUnsupportedFile, field)
		}
	default:
		return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, field)
	}
	return nil
}

// CleanAssetPath strips leading slashes and rejects paths that leave the assets root.
func CleanAssetPath(p string) (string, bool) {
	p = strings.TrimLeft(strings.ReplaceAll(p, "\\", "/"), "/")
	if p == "" {
		return "", false
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	return clean, true
}
