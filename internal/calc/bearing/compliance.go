package bearing

import (
	"encoding/json"
	"math"
)

// Verdict is the outcome of one normative check. Ratio is Demand/Capacity;
// an unbounded capacity gives 0, a zero capacity gives +Inf.
type Verdict struct {
	Check    CheckID
	Demand   float64
	Capacity float64
	Unit     string
	Pass     bool
	Ratio    float64
	Severity Severity
	Note     string
}

// Limits are the capacities derived alongside the verdicts.
type Limits struct {
	StrainLimit         float64 `json:"strain_limit"`
	MinShimMM           float64 `json:"min_shim_mm"`
	StabilityLimitMPa   float64 `json:"stability_limit_mpa"`
	FrictionCoefficient float64 `json:"friction_coefficient"`
}

func ratio(demand, capacity float64) float64 {
	if math.IsInf(capacity, 1) {
		return 0
	}
	if capacity == 0 {
		return math.Inf(1)
	}
	return demand / capacity
}

func atMost(id CheckID, demand, capacity float64, unit string) Verdict {
	return Verdict{
		Check:    id,
		Demand:   demand,
		Capacity: capacity,
		Unit:     unit,
		Pass:     demand <= capacity,
		Ratio:    ratio(demand, capacity),
		Severity: SeverityHard,
	}
}

func atLeast(id CheckID, demand, capacity float64, unit string) Verdict {
	v := atMost(id, demand, capacity, unit)
	v.Pass = demand >= capacity
	return v
}

// evaluateStandard runs the EN 1337-3 check table.
func evaluateStandard(in Input, g Geometry, d Demand, shim Steel, el Elastomer) ([]Verdict, Limits) {
	var lim Limits
	lim.StrainLimit = StrainLimitCoefficient / in.GammaM
	lim.MinShimMM = d.StressMPa * in.LayerMM / (shim.FyMPa / in.GammaM)
	lim.StabilityLimitMPa = StabilityCoefficient * g.NetAMM * el.GMPa * d.ShapeFactor / d.TotalElastomerMM

	verdicts := []Verdict{
		atMost(CheckMaxStress, d.StressMPa, MaxCompressiveStressMPa, "MPa"),
		atLeast(CheckMinStress, d.MinStressMPa, MinCompressiveStressMPa, "MPa"),
		atMost(CheckCombinedStrain, d.TotalStrain, lim.StrainLimit, ""),
		atLeast(CheckReinforcement, in.ShimMM, lim.MinShimMM, "mm"),
		atMost(CheckStability, d.StressMPa, lim.StabilityLimitMPa, "MPa"),
	}
	sliding, mu := slidingVerdict(in, d)
	lim.FrictionCoefficient = mu
	verdicts = append(verdicts, sliding)
	return verdicts, lim
}

// governingKf picks the smaller friction factor of the two faces.
func governingKf(top, bottom Contact) float64 {
	kf := func(c Contact) float64 {
		if c.Surface == SurfaceConcrete {
			return FrictionKfConcrete
		}
		return FrictionKfOther
	}
	return math.Min(kf(top), kf(bottom))
}

func slidingVerdict(in Input, d Demand) (Verdict, float64) {
	v := Verdict{
		Check:    CheckSliding,
		Demand:   d.HorizontalForceKN,
		Unit:     "kN",
		Severity: SeverityHard,
	}
	if in.Top.Kind == ContactAnchored || in.Bottom.Kind == ContactAnchored {
		v.Capacity = math.Inf(1)
		v.Pass = true
		v.Note = "anchored face, friction not relied upon"
		return v, 0
	}
	if d.MinStressMPa < MinCompressiveStressMPa {
		v.Capacity = 0
		v.Ratio = ratio(v.Demand, 0)
		v.Severity = SeverityAdvisory
		v.Note = "minimum stress below floor, friction model not applicable"
		return v, 0
	}
	mu := FrictionBase + FrictionSlope*governingKf(in.Top, in.Bottom)/d.MinStressMPa
	v.Capacity = mu * in.FzMinKN
	v.Pass = v.Demand <= v.Capacity
	v.Ratio = ratio(v.Demand, v.Capacity)
	return v, mu
}

// evaluateSeismic checks the design displacement ratio band. Leaving the
// band is advisory.
func evaluateSeismic(d Demand) []Verdict {
	g := d.ShearStrain
	v := Verdict{
		Check:    CheckDisplacementRatio,
		Demand:   g,
		Capacity: DisplacementRatioMax,
		Pass:     g >= DisplacementRatioMin && g <= DisplacementRatioMax,
		Ratio:    ratio(g, DisplacementRatioMax),
		Severity: SeverityAdvisory,
	}
	if !v.Pass {
		v.Note = "outside the 1.0 to 3.0 band"
	}
	return []Verdict{v}
}

type verdictJSON struct {
	Check     CheckID  `json:"check"`
	Demand    float64  `json:"demand"`
	Capacity  *float64 `json:"capacity"`
	Unbounded bool     `json:"unbounded,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Pass      bool     `json:"pass"`
	Ratio     *float64 `json:"ratio"`
	Severity  Severity `json:"severity"`
	Note      string   `json:"note,omitempty"`
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// MarshalJSON writes non-finite capacity and ratio as null.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(verdictJSON{
		Check:     v.Check,
		Demand:    v.Demand,
		Capacity:  finite(v.Capacity),
		Unbounded: math.IsInf(v.Capacity, 1),
		Unit:      v.Unit,
		Pass:      v.Pass,
		Ratio:     finite(v.Ratio),
		Severity:  v.Severity,
		Note:      v.Note,
	})
}

func (v *Verdict) UnmarshalJSON(b []byte) error {
	var j verdictJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*v = Verdict{
		Check:    j.Check,
		Demand:   j.Demand,
		Unit:     j.Unit,
		Pass:     j.Pass,
		Severity: j.Severity,
		Note:     j.Note,
	}
	switch {
	case j.Capacity != nil:
		v.Capacity = *j.Capacity
	case j.Unbounded:
		v.Capacity = math.Inf(1)
	}
	if j.Ratio != nil {
		v.Ratio = *j.Ratio
	} else {
		v.Ratio = math.Inf(1)
	}
	return nil
}
