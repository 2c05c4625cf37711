// Package busbar holds the configurator rules: geometry options, peak current,
// input parsing, variant combinations, pagination and asset naming.
package busbar

import "sort"

var widthsByThickness = map[int][]int{
	2:  {12},
	4:  {12, 18, 25},
	5:  {12, 15, 20, 25, 30, 32, 40, 50, 60, 63, 80, 100, 125, 150},
	10: {10, 20, 30, 40, 50, 60, 80, 100, 120, 150, 160, 200},
}

// Icc bounds accepted by the calculator (kA).
const (
	MinIcc = 12
	MaxIcc = 200
)

// ThicknessOptions returns the supported busbar thicknesses (mm), ascending.
func ThicknessOptions() []int {
	out := make([]int, 0, len(widthsByThickness))
	for t := range widthsByThickness {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}

// WidthOptions returns the widths (mm) available for a thickness. Unknown thickness gives an empty list.
func WidthOptions(thickness int) []int {
	ws, ok := widthsByThickness[thickness]
	if !ok {
		return []int{}
	}
	out := make([]int, len(ws))
	copy(out, ws)
	return out
}

// IsValidGeometry reports whether width is offered for thickness.
func IsValidGeometry(thickness, width int) bool {
	for _, w := range widthsByThickness[thickness] {
		if w == width {
			return true
		}
	}
	return false
}

// PeakFactor is the IEC 61439-1 n-factor relating rms short circuit current to peak current.
func PeakFactor(icc float64) float64 {
	switch {
	case icc <= 5:
		return 1.5
	case icc <= 10:
		return 1.7
	case icc <= 20:
		return 2.0
	case icc <= 50:
		return 2.1
	default:
		return 2.2
	}
}

// PeakCurrent returns Ipk = icc * PeakFactor(icc).
func PeakCurrent(icc float64) float64 {
	return icc * PeakFactor(icc)
}

// ClampIcc keeps icc in [MinIcc, MaxIcc].
func ClampIcc(icc int) int {
	if icc < MinIcc {
		return MinIcc
	}
	if icc > MaxIcc {
		return MaxIcc
	}
	return icc
}
