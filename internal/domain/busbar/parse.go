package busbar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/berlivn/eriflex-api/internal/domain"
)

var polesByName = map[string]int{"Bi": 2, "Three": 3, "Four": 4}

// ParsePoles maps "Bi", "Three", "Four" or a plain integer to a pole count.
func ParsePoles(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, ok := polesByName[s]; ok {
		return n, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: invalid value for poles: %q", domain.ErrInvalidInput, s)
	}
	return n, nil
}

// ParsePerPhase reads the leading integer of labels like "1 Busbar".
func ParsePerPhase(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty perPhase", domain.ErrInvalidInput)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: invalid value for perPhase: %q", domain.ErrInvalidInput, s)
	}
	return n, nil
}

// ParseDimension reads a thickness or width sent as text ("5", "5.0").
func ParseDimension(name, s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%w: invalid value for %s: %q", domain.ErrInvalidInput, name, s)
	}
	return int(f), nil
}

// NormalizePerPhase maps 5 bars per phase to 4; the upstream calculator has no 5-bar column.
func NormalizePerPhase(b int) int {
	if b == 5 {
		return 4
	}
	return b
}

// DefaultAmini is the fallback minimum spacing when a_list does not start with an integer.
const DefaultAmini = 60

// FirstSpacing returns the first comma separated integer of aList.
func FirstSpacing(aList string) (int, bool) {
	first, _, _ := strings.Cut(aList, ",")
	n, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Amini returns FirstSpacing(aList) or DefaultAmini.
func Amini(aList string) int {
	if n, ok := FirstSpacing(aList); ok {
		return n
	}
	return DefaultAmini
}
