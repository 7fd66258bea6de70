package bearing

// Mode selects the governing standard.
type Mode string

const (
	ModeStandard Mode = "standard" // EN 1337-3
	ModeSeismic  Mode = "seismic"  // EN 15129
)

type Shape string

const (
	ShapeRectangular Shape = "rectangular"
	ShapeCircular    Shape = "circular"
)

// BearingType follows the EN 1337-3 type letters. Seismic mode always
// evaluates an isolator.
type BearingType string

const (
	TypeA        BearingType = "A" // single elastomer layer
	TypeB        BearingType = "B" // laminated, shims fully embedded
	TypeC        BearingType = "C" // laminated with external plates
	TypeIsolator BearingType = "isolator"
)

type ContactKind string

const (
	ContactFrictional ContactKind = "frictional"
	ContactAnchored   ContactKind = "anchored"
)

// Surface is the material the bearing face bears against.
type Surface string

const (
	SurfaceConcrete Surface = "concrete"
	SurfaceOther    Surface = "other"
)

type LoadType string

const (
	LoadStatic  LoadType = "static"  // buildings
	LoadDynamic LoadType = "dynamic" // bridge traffic
)

// RotationRule decides how the two rotational strain contributions combine.
type RotationRule string

const (
	RotationRSS    RotationRule = "rss"
	RotationLinear RotationRule = "linear"
)

// StiffnessArea is the area basis shared by Kv and Kh.
type StiffnessArea string

const (
	StiffnessGross StiffnessArea = "gross"
	StiffnessNet   StiffnessArea = "net"
)

type Severity string

const (
	SeverityHard     Severity = "hard"
	SeverityAdvisory Severity = "advisory"
)

type CheckID string

const (
	CheckMaxStress         CheckID = "max_compressive_stress"
	CheckMinStress         CheckID = "min_compressive_stress"
	CheckCombinedStrain    CheckID = "combined_strain"
	CheckReinforcement     CheckID = "reinforcement_thickness"
	CheckStability         CheckID = "rotational_stability"
	CheckSliding           CheckID = "sliding_resistance"
	CheckDisplacementRatio CheckID = "displacement_ratio"
)

// Contact describes one bearing face.
type Contact struct {
	Kind    ContactKind `json:"kind"`
	Surface Surface     `json:"surface"`
}

func (m Mode) valid() bool { return m == ModeStandard || m == ModeSeismic }

func (s Shape) valid() bool { return s == ShapeRectangular || s == ShapeCircular }

func (t BearingType) valid() bool {
	switch t {
	case TypeA, TypeB, TypeC, TypeIsolator:
		return true
	}
	return false
}

func (c Contact) valid() bool {
	if c.Kind != ContactFrictional && c.Kind != ContactAnchored {
		return false
	}
	return c.Surface == SurfaceConcrete || c.Surface == SurfaceOther
}

func (l LoadType) valid() bool { return l == LoadStatic || l == LoadDynamic }

func (r RotationRule) valid() bool { return r == RotationRSS || r == RotationLinear }

func (s StiffnessArea) valid() bool { return s == StiffnessGross || s == StiffnessNet }

// Factor returns K_L.
func (l LoadType) Factor() float64 {
	if l == LoadDynamic {
		return LoadFactorDynamic
	}
	return LoadFactorStatic
}
