package bearing

import (
	"fmt"
	"math"
)

// Hysteresis is the bilinear idealization of an isolator at the design
// displacement. Forces in N, stiffnesses in N/mm unless the name says kN.
type Hysteresis struct {
	DesignDispMM       float64 `json:"design_disp_mm"`
	InitialStiffness   float64 `json:"k1_n_mm"`
	PostYieldStiffness float64 `json:"k2_n_mm"`
	CharStrengthN      float64 `json:"qd_n"`
	CharStrengthKN     float64 `json:"qd_kn"`
	YieldDispMM        float64 `json:"yield_disp_mm"`
	EffStiffness       float64 `json:"keff_n_mm"`
	EffStiffnessKNmm   float64 `json:"keff_kn_mm"`
	DampingRatio       float64 `json:"damping_ratio"`
	DampingPercent     float64 `json:"damping_percent"`
}

// computeHysteresis evaluates the loop for rubber area a (mm2), total rubber
// thickness te (mm) and design displacement ds (mm).
func computeHysteresis(iso Isolator, a, te, ds float64) (Hysteresis, error) {
	if ds <= 0 {
		return Hysteresis{}, fmt.Errorf("%w: design displacement %.2f mm", ErrNonPositiveDimension, ds)
	}
	if a <= 0 || te <= 0 || iso.GMPa <= 0 {
		return Hysteresis{}, fmt.Errorf("%w: isolator stiffness denominator", ErrNonPositiveDimension)
	}

	k1 := iso.GMPa * a / te
	qd := iso.QdNormMPa * a
	h := Hysteresis{
		DesignDispMM:       ds,
		InitialStiffness:   k1,
		PostYieldStiffness: iso.Alpha * k1,
		CharStrengthN:      qd,
		CharStrengthKN:     qd / kNToN,
		YieldDispMM:        qd / k1,
	}
	h.EffStiffness = qd*(1-iso.Alpha)/ds + h.PostYieldStiffness
	h.EffStiffnessKNmm = h.EffStiffness / kNToN

	// below yield the loop encloses no area
	if ds > h.YieldDispMM && h.EffStiffness > 0 {
		h.DampingRatio = 2 * qd * (ds - h.YieldDispMM) / (math.Pi * h.EffStiffness * ds * ds)
	}
	h.DampingPercent = h.DampingRatio * 100
	return h, nil
}
