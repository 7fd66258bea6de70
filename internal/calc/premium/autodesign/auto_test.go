package autodesign

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Bearing/internal/calc/bearing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laminated() bearing.Input {
	return bearing.Input{
		AMM:        300,
		BMM:        400,
		LayerMM:    10,
		ShimMM:     3,
		ShimSteel:  "S275JR",
		Elastomer:  "NR-G0.9",
		LoadType:   bearing.LoadDynamic,
		FzKN:       800,
		FzMinKN:    400,
		VxMM:       60,
		AlphaAMrad: 5,
	}
}

func TestLayers_Standard(t *testing.T) {
	res, err := Layers(context.Background(), Input{Bearing: laminated()}, nil)
	require.NoError(t, err)

	// two layers leave the combined strain above 7/1.15
	assert.Equal(t, 3, res.Layers)
	assert.Equal(t, 3, res.Tried)
	assert.True(t, res.Design.OK)
	assert.Equal(t, 3, res.Design.Layers)
}

func isolator() bearing.Input {
	return bearing.Input{
		Mode:           bearing.ModeSeismic,
		Shape:          bearing.ShapeCircular,
		DiameterMM:     400,
		CoreDiameterMM: 100,
		LayerMM:        10,
		Elastomer:      "LRB-G0.6",
		FzKN:           1200,
		DesignDispMM:   150,
	}
}

func TestLayers_Seismic(t *testing.T) {
	res, err := Layers(context.Background(), Input{Bearing: isolator()}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Layers)
	assert.InDelta(t, 3.0, res.Design.Demand.ShearStrain, 1e-9)
}

func TestLayers_Infeasible(t *testing.T) {
	in := laminated()
	in.FzKN = 2000 // 16.7 MPa whatever the layer count
	_, err := Layers(context.Background(), Input{Bearing: in, MaxLayers: 10}, nil)
	assert.ErrorIs(t, err, ErrNoFeasibleDesign)
	assert.Contains(t, err.Error(), "10 layers")
}

func TestLayers_FatalErrorStopsSearch(t *testing.T) {
	in := laminated()
	in.Elastomer = "EPDM"
	_, err := Layers(context.Background(), Input{Bearing: in}, nil)
	assert.ErrorIs(t, err, bearing.ErrUnknownMaterial)
}

func TestLayers_TypeAOnlyTriesOneLayer(t *testing.T) {
	in := laminated()
	in.BearingType = bearing.TypeA
	_, err := Layers(context.Background(), Input{Bearing: in}, nil)
	assert.ErrorIs(t, err, ErrNoFeasibleDesign)
}

func TestLayers_SeismicIgnoresTypeA(t *testing.T) {
	in := isolator()
	in.BearingType = bearing.TypeA
	res, err := Layers(context.Background(), Input{Bearing: in}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Layers)
	assert.Equal(t, 5, res.Tried)
}

func TestHandler_Bearing(t *testing.T) {
	body, err := json.Marshal(Input{Bearing: laminated()})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	(&Handler{}).Bearing(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Layers)

	in := laminated()
	in.FzKN = 2000
	body, err = json.Marshal(Input{Bearing: in})
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	(&Handler{}).Bearing(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
