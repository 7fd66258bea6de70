package bearing

import (
	"fmt"
)

// Input is the flat request snapshot. Lengths in mm, forces in kN,
// rotations in mrad. Fields that do not apply to the selected mode may be
// left zero; the engine zeroes them itself.
type Input struct {
	Project   string `json:"project"`
	BearingID string `json:"bearing_id"`

	Mode        Mode        `json:"mode"`
	BearingType BearingType `json:"bearing_type"`
	Shape       Shape       `json:"shape"`

	AMM            float64 `json:"a_mm"`
	BMM            float64 `json:"b_mm"`
	DiameterMM     float64 `json:"diameter_mm"`
	SideCoverMM    float64 `json:"side_cover_mm"`
	LayerMM        float64 `json:"te_mm"`
	Layers         int     `json:"layers"`
	ShimMM         float64 `json:"ts_mm"`
	PlateMM        float64 `json:"tp_mm"`
	HoleCount      int     `json:"hole_count"`
	HoleDiameterMM float64 `json:"hole_diameter_mm"`
	CoreDiameterMM float64 `json:"core_diameter_mm"`

	ShimSteel  string `json:"shim_steel"`
	PlateSteel string `json:"plate_steel"`

	// Elastomer is an elastomer key in standard mode and an isolator key in
	// seismic mode.
	Elastomer string  `json:"elastomer"`
	GammaM    float64 `json:"gamma_m"`

	LoadType LoadType `json:"load_type"`
	Top      Contact  `json:"top"`
	Bottom   Contact  `json:"bottom"`

	FzKN       float64 `json:"fz_kn"`
	FzMinKN    float64 `json:"fz_min_kn"`
	FxKN       float64 `json:"fx_kn"`
	FyKN       float64 `json:"fy_kn"`
	VxMM       float64 `json:"vx_mm"`
	VyMM       float64 `json:"vy_mm"`
	AlphaAMrad float64 `json:"alpha_a_mrad"`
	AlphaBMrad float64 `json:"alpha_b_mrad"`

	DesignDispMM float64 `json:"design_disp_mm"`

	RotationRule  RotationRule  `json:"rotation_rule"`
	StiffnessArea StiffnessArea `json:"stiffness_area"`
}

// Result is the full, read-only outcome of one evaluation.
type Result struct {
	Project     string      `json:"project,omitempty"`
	BearingID   string      `json:"bearing_id,omitempty"`
	Mode        Mode        `json:"mode"`
	Shape       Shape       `json:"shape"`
	BearingType BearingType `json:"bearing_type"`
	Material    string      `json:"material"`
	GammaM      float64     `json:"gamma_m"`
	Layers      int         `json:"layers"`

	Geometry  Geometry   `json:"geometry"`
	Demand    Demand     `json:"demand"`
	Stiffness Stiffness  `json:"stiffness"`
	Seismic   Hysteresis `json:"seismic"`
	Limits    Limits     `json:"limits"`
	Verdicts  []Verdict  `json:"verdicts"`

	OK         bool   `json:"ok"`
	Advisories int    `json:"advisories"`
	Notes      string `json:"notes"`
}

// Verdict returns the verdict for a check, if it was evaluated.
func (r Result) Verdict(id CheckID) (Verdict, bool) {
	for _, v := range r.Verdicts {
		if v.Check == id {
			return v, true
		}
	}
	return Verdict{}, false
}

// Calculate evaluates in against the default catalog.
func Calculate(in Input) (Result, error) {
	return defaultCatalog.Calculate(in)
}

// Calculate evaluates in against c. It either returns a fully populated
// result or a fatal error, never both.
func (c *Catalog) Calculate(in Input) (Result, error) {
	in, err := normalize(in)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Project:     in.Project,
		BearingID:   in.BearingID,
		Mode:        in.Mode,
		Shape:       in.Shape,
		BearingType: in.BearingType,
		GammaM:      in.GammaM,
		Layers:      in.Layers,
	}

	switch in.Mode {
	case ModeStandard:
		shim, err := c.Steel(in.ShimSteel)
		if err != nil {
			return Result{}, err
		}
		if in.BearingType == TypeC {
			if _, err := c.Steel(in.PlateSteel); err != nil {
				return Result{}, err
			}
		}
		el, err := c.Elastomer(in.Elastomer)
		if err != nil {
			return Result{}, err
		}
		res.Material = el.Name

		g, err := resolveGeometry(in, 0)
		if err != nil {
			return Result{}, err
		}
		d, err := computeDemand(in, g, el.GMPa)
		if err != nil {
			return Result{}, err
		}
		res.Geometry = g
		res.Demand = d
		res.Stiffness = computeStiffness(in.StiffnessArea, g, d, el)
		res.Verdicts, res.Limits = evaluateStandard(in, g, d, shim, el)
		res.Notes = "EN 1337-3 laminated elastomeric bearing verification."

	case ModeSeismic:
		if in.ShimSteel != "" {
			if _, err := c.Steel(in.ShimSteel); err != nil {
				return Result{}, err
			}
		}
		iso, err := c.Isolator(in.Elastomer)
		if err != nil {
			return Result{}, err
		}
		res.Material = iso.Name

		core := 0.0
		if iso.LeadCore {
			core = in.CoreDiameterMM
		}
		g, err := resolveGeometry(in, core)
		if err != nil {
			return Result{}, err
		}
		d, err := computeDemand(in, g, iso.GMPa)
		if err != nil {
			return Result{}, err
		}
		h, err := computeHysteresis(iso, g.NetAreaMM2, d.TotalElastomerMM, in.DesignDispMM)
		if err != nil {
			return Result{}, err
		}
		res.Geometry = g
		res.Demand = d
		res.Stiffness = Stiffness{AreaBasis: in.StiffnessArea}
		res.Seismic = h
		res.Verdicts = evaluateSeismic(d)
		res.Notes = "EN 15129 bilinear isolator idealization."
	}

	res.OK = true
	for _, v := range res.Verdicts {
		if v.Pass {
			continue
		}
		if v.Severity == SeverityAdvisory {
			res.Advisories++
			continue
		}
		res.OK = false
	}
	return res, nil
}

// normalize applies defaults, zeroes fields that do not belong to the mode
// and rejects unknown enumerations and non-positive dimensions.
func normalize(in Input) (Input, error) {
	if in.Mode == "" {
		in.Mode = ModeStandard
	}
	if in.Shape == "" {
		in.Shape = ShapeRectangular
	}
	if in.LoadType == "" {
		in.LoadType = LoadStatic
	}
	if in.RotationRule == "" {
		in.RotationRule = RotationRSS
	}
	if in.StiffnessArea == "" {
		in.StiffnessArea = StiffnessGross
	}
	for _, c := range []*Contact{&in.Top, &in.Bottom} {
		if c.Kind == "" {
			c.Kind = ContactFrictional
		}
		if c.Surface == "" {
			c.Surface = SurfaceConcrete
		}
	}

	if !in.Mode.valid() {
		return Input{}, fmt.Errorf("%w: mode %q", ErrInvalidRequest, in.Mode)
	}
	if !in.Shape.valid() {
		return Input{}, fmt.Errorf("%w: shape %q", ErrInvalidRequest, in.Shape)
	}
	if !in.LoadType.valid() {
		return Input{}, fmt.Errorf("%w: load type %q", ErrInvalidRequest, in.LoadType)
	}
	if !in.RotationRule.valid() {
		return Input{}, fmt.Errorf("%w: rotation rule %q", ErrInvalidRequest, in.RotationRule)
	}
	if !in.StiffnessArea.valid() {
		return Input{}, fmt.Errorf("%w: stiffness area %q", ErrInvalidRequest, in.StiffnessArea)
	}
	if !in.Top.valid() || !in.Bottom.valid() {
		return Input{}, fmt.Errorf("%w: contact condition", ErrInvalidRequest)
	}

	switch in.Mode {
	case ModeStandard:
		if in.BearingType == "" {
			in.BearingType = TypeB
		}
		if !in.BearingType.valid() || in.BearingType == TypeIsolator {
			return Input{}, fmt.Errorf("%w: bearing type %q in standard mode", ErrInvalidRequest, in.BearingType)
		}
		if in.BearingType == TypeA {
			in.Layers = 1
		}
		if in.BearingType != TypeC {
			in.PlateMM = 0
		}
		if in.GammaM <= 0 {
			in.GammaM = DefaultGammaMStandard
		}
		in.CoreDiameterMM = 0
		in.DesignDispMM = 0
	case ModeSeismic:
		in.BearingType = TypeIsolator
		if in.GammaM <= 0 {
			in.GammaM = DefaultGammaMSeismic
		}
		if in.DesignDispMM == 0 {
			in.DesignDispMM = in.VxMM
		}
		in.VxMM = in.DesignDispMM
		in.VyMM = 0
		in.FxKN, in.FyKN = 0, 0
		in.AlphaAMrad, in.AlphaBMrad = 0, 0
		in.FzMinKN = in.FzKN
		in.HoleCount, in.HoleDiameterMM = 0, 0
		in.PlateMM = 0
	}

	if in.Shape == ShapeCircular {
		if in.DiameterMM <= 0 {
			return Input{}, fmt.Errorf("%w: diameter %.1f mm", ErrNonPositiveDimension, in.DiameterMM)
		}
		in.AMM, in.BMM = in.DiameterMM, in.DiameterMM
	} else if in.AMM <= 0 || in.BMM <= 0 {
		return Input{}, fmt.Errorf("%w: plan %.1f x %.1f mm", ErrNonPositiveDimension, in.AMM, in.BMM)
	}
	if in.LayerMM <= 0 {
		return Input{}, fmt.Errorf("%w: elastomer layer thickness %.2f mm", ErrNonPositiveDimension, in.LayerMM)
	}
	if in.Layers < 1 {
		return Input{}, fmt.Errorf("%w: %d elastomer layers", ErrNonPositiveDimension, in.Layers)
	}
	if in.SideCoverMM < 0 || in.ShimMM < 0 || in.PlateMM < 0 || in.HoleCount < 0 ||
		in.HoleDiameterMM < 0 || in.CoreDiameterMM < 0 {
		return Input{}, fmt.Errorf("%w: negative length or count", ErrNonPositiveDimension)
	}
	return in, nil
}
