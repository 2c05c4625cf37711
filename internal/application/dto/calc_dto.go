package dto

// CalcExcelRequest body of POST /api/calcExcel. Values are truncated to integers upstream.
type CalcExcelRequest struct {
	W         float64 `json:"W" query:"W" validate:"gt=0"`
	T         float64 `json:"T" query:"T" validate:"gt=0"`
	B         int     `json:"B" query:"B" validate:"min=1,max=10"`
	Angle     float64 `json:"Angle" query:"Angle" validate:"min=0,max=360"`
	A         float64 `json:"a" query:"a" validate:"gt=0"`
	Icc       float64 `json:"Icc" query:"Icc" validate:"gt=0"`
	Force     float64 `json:"Force" query:"Force" validate:"gt=0"`
	NbrePhase int     `json:"NbrePhase" query:"NbrePhase" validate:"min=1,max=10"`
}

// SendAspExcelRequest query of GET /api/sendAspExcel.
type SendAspExcelRequest struct {
	W     float64 `query:"W" validate:"gt=0"`
	T     float64 `query:"T" validate:"gt=0"`
	B     int     `query:"B" validate:"min=1,max=10"`
	Angle float64 `query:"Angle" validate:"min=0,max=360"`
	A     float64 `query:"a" validate:"gt=0"`
	Icc   float64 `query:"Icc" validate:"gt=0"`
	Force float64 `query:"Force" validate:"gt=0"`
	Poles int     `query:"poles" validate:"min=1,max=10"`
}

// CalcExcelResponse L is null when the calculator had no answer.
type CalcExcelResponse struct {
	L *string `json:"L"`
}

// SendAspExcelResponse raw upstream answer.
type SendAspExcelResponse struct {
	Response string `json:"response"`
}
