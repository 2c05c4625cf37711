package dto

// ComponentAssetsRequest query of GET /api/components/:id/assets.
type ComponentAssetsRequest struct {
	NbPhase int    `query:"nbphase" validate:"required,min=1,max=10"`
	Resmini int    `query:"resmini" validate:"min=0"`
	Img1    string `query:"img1" validate:"max=100"`
	Img2    string `query:"img2" validate:"max=100"`
}

// ComponentAssetsResponse resolved image URLs and document links. Missing documents are null.
type ComponentAssetsResponse struct {
	Images    []string         `json:"images"`
	Documents DocumentLinksDTO `json:"documents"`
}

// DocumentLinksDTO one link per document kind.
type DocumentLinksDTO struct {
	Doc   *string `json:"doc"`
	TwoD  *string `json:"2d"`
	Three *string `json:"3d"`
}

// DeleteImageRequest body of DELETE /api/deleteImage.
type DeleteImageRequest struct {
	ImagePath string `json:"image_path" validate:"required,max=300"`
}

// DeleteFileRequest body of DELETE /api/deleteFile.
type DeleteFileRequest struct {
	FilePath string `json:"file_path" validate:"required,max=300"`
}

// UploadResponse stored paths keyed by form field.
type UploadResponse struct {
	Message string            `json:"message"`
	Files   map[string]string `json:"files"`
}
