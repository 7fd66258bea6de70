package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"Bearing/internal/calc/bearing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(id string, fzKN float64) bearing.Input {
	return bearing.Input{
		BearingID:  id,
		AMM:        300,
		BMM:        400,
		LayerMM:    10,
		Layers:     3,
		ShimMM:     3,
		ShimSteel:  "S275JR",
		Elastomer:  "NR-G0.9",
		FzKN:       fzKN,
		FzMinKN:    400,
		VxMM:       20,
		AlphaAMrad: 5,
	}
}

func TestCalculate_PreservesOrderAndIsolatesErrors(t *testing.T) {
	in := Input{}
	for i := 0; i < 40; i++ {
		req := request("B"+string(rune('A'+i%26)), float64(500+10*i))
		if i%7 == 3 {
			req.Elastomer = "unknown"
		}
		in.Items = append(in.Items, req)
	}

	res, err := Calculate(context.Background(), in, nil)
	require.NoError(t, err)
	require.Len(t, res.Items, 40)
	assert.Equal(t, 40, res.Count)

	failed := 0
	for i, it := range res.Items {
		assert.Equal(t, i, it.Index)
		assert.Equal(t, in.Items[i].BearingID, it.BearingID)
		if i%7 == 3 {
			failed++
			assert.Nil(t, it.Result)
			assert.Contains(t, it.Error, "unknown material")
			continue
		}
		require.NotNil(t, it.Result)
		want, err := bearing.Calculate(in.Items[i])
		require.NoError(t, err)
		assert.Equal(t, want, *it.Result)
	}
	assert.Equal(t, failed, res.Failed)
}

func TestCalculate_UsesEvaluator(t *testing.T) {
	var calls atomic.Int32
	eval := func(ctx context.Context, in bearing.Input) (bearing.Result, error) {
		calls.Add(1)
		return bearing.Result{BearingID: in.BearingID, OK: true}, nil
	}
	res, err := Calculate(context.Background(), Input{Items: []bearing.Input{request("a", 1), request("b", 1)}}, eval)
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, 2, res.Passed)
}

func TestCalculate_Limits(t *testing.T) {
	_, err := Calculate(context.Background(), Input{}, nil)
	assert.Error(t, err)

	_, err = Calculate(context.Background(), Input{Items: make([]bearing.Input, MaxItems+1)}, nil)
	assert.Error(t, err)
}

func TestCalculate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Calculate(ctx, Input{Items: []bearing.Input{request("a", 800)}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandler_Bearing(t *testing.T) {
	body, err := json.Marshal(Input{Items: []bearing.Input{request("P1", 800), request("P2", 2000)}})
	require.NoError(t, err)

	h := &Handler{}
	rec := httptest.NewRecorder()
	h.Bearing(rec, httptest.NewRequest(http.MethodPost, "/api/user/tools-premium/bearing/batch", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Items, 2)
	assert.Equal(t, "P2", res.Items[1].BearingID)
	// 2000 kN over 0.12 m2 exceeds the 15 MPa ceiling
	v, ok := res.Items[1].Result.Verdict(bearing.CheckMaxStress)
	require.True(t, ok)
	assert.False(t, v.Pass)

	rec = httptest.NewRecorder()
	h.Bearing(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"items":[]}`))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
