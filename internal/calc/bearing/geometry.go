package bearing

import (
	"fmt"
	"math"
)

// Geometry is the resolved plan geometry of the elastomer. NetA/NetB are the
// plan dimensions after removing side cover (both equal the net diameter for
// circular bearings).
type Geometry struct {
	GrossAreaMM2    float64 `json:"gross_area_mm2"`
	NetAMM          float64 `json:"net_a_mm"`
	NetBMM          float64 `json:"net_b_mm"`
	PlanAreaMM2     float64 `json:"plan_area_mm2"`
	HoleAreaMM2     float64 `json:"hole_area_mm2"`
	CoreAreaMM2     float64 `json:"core_area_mm2"`
	NetAreaMM2      float64 `json:"net_area_mm2"`
	FreePerimeterMM float64 `json:"free_perimeter_mm"`
}

func circleArea(d float64) float64 {
	return math.Pi * d * d / 4.0
}

// resolveGeometry expects a normalized input. coreMM is the diameter of a
// rigid bonded insert, zero when there is none; the free perimeter is then
// the insert circumference.
func resolveGeometry(in Input, coreMM float64) (Geometry, error) {
	var g Geometry
	cover := 2.0 * in.SideCoverMM

	switch in.Shape {
	case ShapeRectangular:
		g.GrossAreaMM2 = in.AMM * in.BMM
		g.NetAMM = in.AMM - cover
		g.NetBMM = in.BMM - cover
		if g.NetAMM <= 0 || g.NetBMM <= 0 {
			return Geometry{}, fmt.Errorf("%w: side cover %.1f mm consumes the plan", ErrNonPositiveNetArea, in.SideCoverMM)
		}
		g.PlanAreaMM2 = g.NetAMM * g.NetBMM
		g.FreePerimeterMM = 2.0 * (g.NetAMM + g.NetBMM)
	case ShapeCircular:
		g.GrossAreaMM2 = circleArea(in.DiameterMM)
		d := in.DiameterMM - cover
		if d <= 0 {
			return Geometry{}, fmt.Errorf("%w: side cover %.1f mm consumes the plan", ErrNonPositiveNetArea, in.SideCoverMM)
		}
		g.NetAMM, g.NetBMM = d, d
		g.PlanAreaMM2 = circleArea(d)
		g.FreePerimeterMM = math.Pi * d
	default:
		return Geometry{}, fmt.Errorf("%w: shape %q", ErrInvalidRequest, in.Shape)
	}

	g.HoleAreaMM2 = float64(in.HoleCount) * circleArea(in.HoleDiameterMM)
	if coreMM > 0 {
		g.CoreAreaMM2 = circleArea(coreMM)
		g.FreePerimeterMM = math.Pi * coreMM
	}
	g.NetAreaMM2 = g.PlanAreaMM2 - g.HoleAreaMM2 - g.CoreAreaMM2
	if g.NetAreaMM2 <= 0 {
		return Geometry{}, fmt.Errorf("%w: %.1f mm2", ErrNonPositiveNetArea, g.NetAreaMM2)
	}
	return g, nil
}
