package bearing

import (
	"fmt"
	"math"
)

// Demand holds the shape factor, stresses and strain components. TotalStrain
// is only gated in standard mode; seismic results carry it as zero.
type Demand struct {
	ShapeFactor       float64 `json:"shape_factor"`
	TotalElastomerMM  float64 `json:"total_elastomer_mm"`
	StressMPa         float64 `json:"stress_mpa"`
	MinStressMPa      float64 `json:"min_stress_mpa"`
	CompressiveStrain float64 `json:"compressive_strain"`
	HorizontalDispMM  float64 `json:"horizontal_disp_mm"`
	ShearStrain       float64 `json:"shear_strain"`
	RotationStrain    float64 `json:"rotation_strain"`
	LoadFactor        float64 `json:"load_factor"`
	TotalStrain       float64 `json:"total_strain"`
	HorizontalForceKN float64 `json:"horizontal_force_kn"`
}

func computeDemand(in Input, g Geometry, shearModulus float64) (Demand, error) {
	var d Demand
	if in.LayerMM <= 0 {
		return Demand{}, fmt.Errorf("%w: elastomer layer thickness %.2f mm", ErrNonPositiveDimension, in.LayerMM)
	}
	if g.NetAreaMM2 <= 0 {
		return Demand{}, fmt.Errorf("%w: %.1f mm2", ErrNonPositiveNetArea, g.NetAreaMM2)
	}
	if g.FreePerimeterMM <= 0 {
		return Demand{}, fmt.Errorf("%w: free perimeter %.1f mm", ErrNonPositiveDimension, g.FreePerimeterMM)
	}
	if shearModulus <= 0 {
		return Demand{}, fmt.Errorf("%w: shear modulus %.3f MPa", ErrNonPositiveDimension, shearModulus)
	}

	d.ShapeFactor = g.NetAreaMM2 / (g.FreePerimeterMM * in.LayerMM)
	d.TotalElastomerMM = float64(in.Layers) * in.LayerMM
	if d.ShapeFactor <= 0 || d.TotalElastomerMM <= 0 {
		return Demand{}, fmt.Errorf("%w: S=%.3f Te=%.2f mm", ErrNonPositiveDimension, d.ShapeFactor, d.TotalElastomerMM)
	}

	d.StressMPa = in.FzKN * kNToN / g.NetAreaMM2
	d.MinStressMPa = in.FzMinKN * kNToN / g.NetAreaMM2
	d.CompressiveStrain = CompressiveStrainCoefficient * d.StressMPa / (shearModulus * d.ShapeFactor)

	d.HorizontalDispMM = math.Hypot(in.VxMM, in.VyMM)
	d.ShearStrain = d.HorizontalDispMM / d.TotalElastomerMM

	// rotation about the a direction pairs with dimension a'
	ra := g.NetAMM * in.AlphaAMrad / 1000.0
	rb := g.NetBMM * in.AlphaBMrad / 1000.0
	d.RotationStrain = combineRotation(in.RotationRule, ra, rb) / (RotationStrainDivisor * d.TotalElastomerMM)

	d.HorizontalForceKN = math.Hypot(in.FxKN, in.FyKN)

	if in.Mode == ModeStandard {
		d.LoadFactor = in.LoadType.Factor()
		d.TotalStrain = d.LoadFactor * (d.CompressiveStrain + d.ShearStrain + d.RotationStrain)
	}
	return d, nil
}

func combineRotation(rule RotationRule, ra, rb float64) float64 {
	if rule == RotationLinear {
		return math.Abs(ra) + math.Abs(rb)
	}
	return math.Hypot(ra, rb)
}
