package dto

import "github.com/shopspring/decimal"

// ComponentKeyRequest identifies a component at a bar-per-phase count.
type ComponentKeyRequest struct {
	ComponentID string `json:"component_id" query:"component_id" validate:"required,max=100"`
	NbPhase     int    `json:"nbphase" query:"nbphase" validate:"required,min=1,max=10"`
}

// ComponentRequest create or update body for a component.
type ComponentRequest struct {
	Key       string           `json:"key" validate:"required,max=100"`
	NbPhase   int              `json:"nbphase" validate:"required,min=1,max=10"`
	Angle     int              `json:"angle" validate:"min=0,max=360"`
	Resmini   int              `json:"resmini" validate:"min=0"`
	Info      string           `json:"info" validate:"max=2000"`
	AList     string           `json:"a_list" validate:"max=500"`
	Thickness []int            `json:"thickness" validate:"required,min=1,dive,min=1"`
	Width     []int            `json:"width" validate:"required,min=1,dive,min=1"`
	Poles     []int            `json:"poles" validate:"required,min=1,dive,min=1"`
	Shape     []string         `json:"shape" validate:"required,min=1,dive,required,max=20"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// ComponentInfoDTO one components_info row.
type ComponentInfoDTO struct {
	Key           string          `json:"key"`
	NbPhase       int             `json:"nbphase"`
	Amini         int             `json:"Amini"`
	Amaxi         int             `json:"Amaxi"`
	Angle         int             `json:"angle"`
	Resmini       int             `json:"resmini"`
	TypeSupport   string          `json:"typesupport"`
	Bmini         int             `json:"Bmini"`
	LargeurModule int             `json:"largeurmodule"`
	Img1Article   string          `json:"img1Article"`
	Img2Article   string          `json:"img2Article"`
	NumArt        string          `json:"numart"`
	Info          string          `json:"info"`
	AList         string          `json:"a_list"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	L             *string         `json:"L,omitempty"`
}

// VariantSummaryDTO distinct geometry values of a component.
type VariantSummaryDTO struct {
	IsComplete bool     `json:"is_complete"`
	Thickness  []int    `json:"thickness"`
	Width      []int    `json:"width"`
	Poles      []int    `json:"poles"`
	Shape      []string `json:"shape"`
}

// ComponentsResponse body of GET /api/getComponents.
type ComponentsResponse struct {
	Components     []ComponentInfoDTO `json:"components"`
	ComponentsList VariantSummaryDTO  `json:"components_list"`
}

// ComponentListResponse body of GET /api/getComponentsList.
type ComponentListResponse struct {
	Components VariantSummaryDTO `json:"components"`
}

// ComponentWriteResponse result of create/update.
type ComponentWriteResponse struct {
	Message  string `json:"message"`
	Variants int    `json:"variants"`
}
