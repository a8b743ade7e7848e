package medications

import (
	"math"
	"slices"
)

// NextDosesShown es cuántas tomas pendientes se listan.
const NextDosesShown = 10

type Progress struct {
	Total   int     `json:"total"`
	Taken   int     `json:"taken"`
	Pending int     `json:"pending"`
	Percent float64 `json:"percent"`
	Next    []Dose  `json:"next"`
}

// ProgressOf resume las tomas de un curso. Next son las próximas pendientes por índice.
func ProgressOf(doses []Dose) Progress {
	sorted := slices.Clone(doses)
	slices.SortStableFunc(sorted, func(a, b Dose) int { return a.Index - b.Index })

	p := Progress{Total: len(sorted), Next: []Dose{}}
	for _, d := range sorted {
		if d.Done {
			p.Taken++
			continue
		}
		p.Pending++
		if len(p.Next) < NextDosesShown {
			p.Next = append(p.Next, d)
		}
	}
	if p.Total > 0 {
		p.Percent = math.Round(float64(p.Taken)/float64(p.Total)*1000) / 10
	}
	return p
}
