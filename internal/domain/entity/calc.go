package entity

import "time"

// CalcParams key of an ASPExcel calculation.
type CalcParams struct {
	W         int // busbar width (mm)
	T         int // busbar thickness (mm)
	B         int // bars per phase
	Angle     int
	A         int // spacing between supports
	Icc       int // short circuit current (kA)
	Force     int // support resistance
	NbrePhase int // poles
}

// CalcRecord cached upstream answer for CalcParams.
type CalcRecord struct {
	CalcParams
	L         string
	CreatedAt time.Time
}
