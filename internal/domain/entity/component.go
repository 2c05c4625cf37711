package entity

import "github.com/shopspring/decimal"

// ComponentInfo catalog data for one support model at a given number of bars per phase.
// (Key, NbPhase) is unique.
type ComponentInfo struct {
	Key           string
	NbPhase       int
	Amini         int
	Amaxi         int
	Angle         int
	Resmini       int // support resistance; Force sent upstream is Resmini*10
	TypeSupport   string
	Bmini         int
	LargeurModule int
	Img1Article   string
	Img2Article   string
	NumArt        string
	Info          string
	AList         string // comma separated spacings, first one used for calculation
	UnitPrice     decimal.Decimal
}

// ComponentVariant one row of components_list: a supported busbar geometry for a component.
type ComponentVariant struct {
	ID          int64
	NbPhase     int
	Thickness   int
	Width       int
	Poles       int
	Shape       string
	ComponentID string
}

// VariantQuery filter for busbar searches.
type VariantQuery struct {
	NbPhase   int
	Thickness int
	Width     int
	Poles     int
	Shape     string
}
