package recommend

import (
	"fmt"

	"Bearing/internal/calc/bearing"
)

// ShimSizesMM are the stocked reinforcing plate thicknesses.
var ShimSizesMM = []float64{2, 3, 4, 5, 6, 8, 10, 12}

type ShimRecommendResult struct {
	RequiredMM    float64 `json:"required_mm"`
	RecommendedMM float64 `json:"recommended_mm"`
	CurrentMM     float64 `json:"current_mm"`
	CurrentOK     bool    `json:"current_ok"`
	Notes         string  `json:"notes"`
}

// ShimThickness picks the thinnest stocked plate not below ts,min.
func ShimThickness(in bearing.Input) (ShimRecommendResult, error) {
	if in.Mode == bearing.ModeSeismic {
		return ShimRecommendResult{}, fmt.Errorf("%w: shim sizing applies to standard bearings", bearing.ErrInvalidRequest)
	}
	res, err := bearing.Calculate(in)
	if err != nil {
		return ShimRecommendResult{}, err
	}
	out := ShimRecommendResult{
		RequiredMM: res.Limits.MinShimMM,
		CurrentMM:  in.ShimMM,
	}
	if v, ok := res.Verdict(bearing.CheckReinforcement); ok {
		out.CurrentOK = v.Pass
	}
	for _, s := range ShimSizesMM {
		if s >= out.RequiredMM {
			out.RecommendedMM = s
			out.Notes = fmt.Sprintf("Thinnest stocked plate not below ts,min = %.2f mm.", out.RequiredMM)
			return out, nil
		}
	}
	return ShimRecommendResult{}, fmt.Errorf("ts,min = %.2f mm exceeds the thickest stocked plate", out.RequiredMM)
}
