package dto

// QueryBusbarRequest body of POST /api/queryBusbar. Geometry arrives as the labels shown in the form.
type QueryBusbarRequest struct {
	PerPhase    string `json:"perPhase" validate:"required,max=20"`
	Thickness   string `json:"thickness" validate:"required,max=10"`
	Width       string `json:"width" validate:"required,max=10"`
	Poles       string `json:"poles" validate:"required,max=10"`
	Shape       string `json:"shape" validate:"required,max=20"`
	Icc         int    `json:"icc" validate:"min=0,max=1000"`
	Page        int    `json:"page" validate:"min=0"`
	PageSize    int    `json:"page_size" validate:"min=0,max=100"`
	WithoutImg1 bool   `json:"without_img1"`
}

// ProductDTO one matching variant with its catalog rows.
type ProductDTO struct {
	ID             int64              `json:"id"`
	NbPhase        int                `json:"nbphase"`
	Thickness      int                `json:"thickness"`
	Width          int                `json:"width"`
	Poles          int                `json:"poles"`
	Shape          string             `json:"shape"`
	ComponentID    string             `json:"component_id"`
	AdditionalInfo []ComponentInfoDTO `json:"additionalInfo"`
}

// QueryBusbarResponse one page of results.
type QueryBusbarResponse struct {
	Products   []ProductDTO `json:"products"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
	Icc        int          `json:"icc"`
	Ipk        float64      `json:"ipk"`
	PeakFactor float64      `json:"peak_factor"`
}

// OptionsResponse geometry choices for the search form.
type OptionsResponse struct {
	Thickness []int         `json:"thickness"`
	Widths    map[int][]int `json:"widths"`
	Poles     []string      `json:"poles"`
	MinIcc    int           `json:"min_icc"`
	MaxIcc    int           `json:"max_icc"`
}
