package bearing

// Normative constants. Clause numbers refer to EN 1337-3:2005 unless noted.
const (
	// 5.3.3.6: minimum average compressive stress under permanent load.
	MinCompressiveStressMPa = 3.0
	// Ceiling on the average compressive stress for laminated bearings.
	MaxCompressiveStressMPa = 15.0

	// 5.3.3.2: characteristic ultimate strain, design value is 7/γm.
	StrainLimitCoefficient = 7.0
	// 5.3.3.3: ε_c,d = 1.5·F_z,d / (G·A_r·S).
	CompressiveStrainCoefficient = 1.5
	// 5.3.3.3 (simplified): rotational strain divisor 3·T_e.
	RotationStrainDivisor = 3.0
	// 5.3.3.7: buckling stability, σ ≤ 2·a'·G·S / (3·T_e).
	StabilityCoefficient = 2.0 / 3.0

	// 5.3.3.6: μ_e = 0.1 + 1.5·K_f / σ_m.
	FrictionBase       = 0.1
	FrictionSlope      = 1.5
	FrictionKfConcrete = 0.6
	FrictionKfOther    = 0.2

	// 5.3.3.2: load-type factor.
	LoadFactorStatic  = 1.0
	LoadFactorDynamic = 1.5

	DefaultGammaMStandard = 1.15
	// EN 15129 8.2: isolators are checked with γm = 1.0.
	DefaultGammaMSeismic = 1.0

	// EN 15129 8.2.3: expected shear strain band at design displacement.
	DisplacementRatioMin = 1.0
	DisplacementRatioMax = 3.0

	kNToN = 1000.0
)
