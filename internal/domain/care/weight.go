package care

import "math"

// WeightPoint es una muestra con la diferencia contra la anterior (más vieja).
type WeightPoint struct {
	WeightSample
	Delta *float64 `json:"delta,omitempty"`
}

// Trend espera muestras ya ordenadas por SortWeights (más reciente primero).
func Trend(samples []WeightSample) []WeightPoint {
	out := make([]WeightPoint, len(samples))
	for i, s := range samples {
		out[i] = WeightPoint{WeightSample: s}
		if i+1 < len(samples) {
			d := math.Round((s.Weight-samples[i+1].Weight)*100) / 100
			out[i].Delta = &d
		}
	}
	return out
}
