package bearing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHysteresis_DampingBounds(t *testing.T) {
	iso, err := DefaultCatalog().Isolator("LRB-G0.6")
	require.NoError(t, err)

	area, te := 117809.7, 100.0
	dy := iso.QdNormMPa * te / iso.GMPa

	for ds := 1.0; ds <= 400; ds += 7 {
		h, err := computeHysteresis(iso, area, te, ds)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(h.DampingRatio))
		if ds <= dy {
			assert.Zero(t, h.DampingRatio, "ds=%g", ds)
			continue
		}
		assert.Greater(t, h.DampingRatio, 0.0, "ds=%g", ds)
		assert.Less(t, h.DampingRatio, 2/math.Pi, "ds=%g", ds)
	}
}

func TestComputeHysteresis_EffectiveStiffnessDecreasesWithDisplacement(t *testing.T) {
	iso, err := DefaultCatalog().Isolator("LRB-G0.6")
	require.NoError(t, err)

	prev := math.Inf(1)
	for _, ds := range []float64{20, 50, 100, 200, 300} {
		h, err := computeHysteresis(iso, 100000, 120, ds)
		require.NoError(t, err)
		assert.Less(t, h.EffStiffness, prev)
		assert.Greater(t, h.EffStiffness, h.PostYieldStiffness)
		prev = h.EffStiffness
	}
}

func TestComputeHysteresis_RejectsDegenerateInput(t *testing.T) {
	iso, err := DefaultCatalog().Isolator("HDRB-G0.8")
	require.NoError(t, err)

	_, err = computeHysteresis(iso, 1000, 50, 0)
	assert.ErrorIs(t, err, ErrNonPositiveDimension)
	_, err = computeHysteresis(iso, 0, 50, 10)
	assert.ErrorIs(t, err, ErrNonPositiveDimension)
	_, err = computeHysteresis(iso, 1000, 0, 10)
	assert.ErrorIs(t, err, ErrNonPositiveDimension)
}

func TestResolveGeometry_CoreReplacesPerimeter(t *testing.T) {
	in := Input{Shape: ShapeCircular, DiameterMM: 500, AMM: 500, BMM: 500, SideCoverMM: 10}

	g, err := resolveGeometry(in, 0)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pi*480, g.FreePerimeterMM, 1e-12)

	g, err = resolveGeometry(in, 120)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pi*120, g.FreePerimeterMM, 1e-12)
	assert.InEpsilon(t, math.Pi*(480*480-120*120)/4, g.NetAreaMM2, 1e-12)

	_, err = resolveGeometry(in, 480)
	assert.ErrorIs(t, err, ErrNonPositiveNetArea)
}
