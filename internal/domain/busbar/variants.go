package busbar

import (
	"sort"

	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

// Combinations returns the cartesian product thickness x width x poles x shape for a component.
func Combinations(componentID string, nbphase int, thickness, width, poles []int, shape []string) []entity.ComponentVariant {
	out := make([]entity.ComponentVariant, 0, len(thickness)*len(width)*len(poles)*len(shape))
	for _, t := range thickness {
		for _, w := range width {
			for _, p := range poles {
				for _, s := range shape {
					out = append(out, entity.ComponentVariant{
						NbPhase:     nbphase,
						Thickness:   t,
						Width:       w,
						Poles:       p,
						Shape:       s,
						ComponentID: componentID,
					})
				}
			}
		}
	}
	return out
}

// VariantSummary distinct values found in a component's variant list.
type VariantSummary struct {
	IsComplete bool
	Thickness  []int
	Width      []int
	Poles      []int
	Shape      []string
}

// Summarize collects sorted distinct values. IsComplete is true when every
// combination of those values is present exactly once.
func Summarize(vs []*entity.ComponentVariant) VariantSummary {
	ts, ws, ps := map[int]struct{}{}, map[int]struct{}{}, map[int]struct{}{}
	ss := map[string]struct{}{}
	for _, v := range vs {
		ts[v.Thickness] = struct{}{}
		ws[v.Width] = struct{}{}
		ps[v.Poles] = struct{}{}
		ss[v.Shape] = struct{}{}
	}
	sum := VariantSummary{
		Thickness: sortedInts(ts),
		Width:     sortedInts(ws),
		Poles:     sortedInts(ps),
		Shape:     sortedStrings(ss),
	}
	expected := len(ts) * len(ws) * len(ps) * len(ss)
	sum.IsComplete = len(vs) > 0 && len(vs) == expected
	return sum
}

func sortedInts(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func sortedStrings(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
