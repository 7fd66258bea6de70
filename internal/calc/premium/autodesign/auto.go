package autodesign

import (
	"context"
	"errors"
	"fmt"

	"Bearing/internal/calc/bearing"
	"Bearing/internal/calc/premium/batch"
)

// Layer count search range.
const (
	MinLayers = 1
	MaxLayers = 30
)

var ErrNoFeasibleDesign = errors.New("no layer count satisfies the checks")

type Input struct {
	Bearing   bearing.Input `json:"bearing"`
	MaxLayers int           `json:"max_layers"`
}

type Result struct {
	Layers int            `json:"layers"`
	Tried  int            `json:"tried"`
	Design bearing.Result `json:"design"`
	Notes  string         `json:"notes"`
}

// acceptable: every hard check passes, and an isolator also stays inside
// the displacement ratio band.
func acceptable(r bearing.Result) bool {
	if !r.OK {
		return false
	}
	return r.Mode != bearing.ModeSeismic || r.Advisories == 0
}

// Layers returns the smallest layer count in [MinLayers, MaxLayers] that
// makes the bearing acceptable. Fatal configuration errors stop the search.
func Layers(ctx context.Context, in Input, eval batch.Evaluator) (Result, error) {
	if eval == nil {
		eval = func(_ context.Context, in bearing.Input) (bearing.Result, error) {
			return bearing.Calculate(in)
		}
	}
	limit := in.MaxLayers
	if limit <= 0 || limit > MaxLayers {
		limit = MaxLayers
	}
	// seismic requests are always isolators, whatever type they carry
	if in.Bearing.BearingType == bearing.TypeA && in.Bearing.Mode != bearing.ModeSeismic {
		limit = MinLayers
	}

	for n := MinLayers; n <= limit; n++ {
		req := in.Bearing
		req.Layers = n
		res, err := eval(ctx, req)
		if err != nil {
			return Result{}, err
		}
		if acceptable(res) {
			return Result{
				Layers: n,
				Tried:  n - MinLayers + 1,
				Design: res,
				Notes:  fmt.Sprintf("Smallest layer count satisfying all checks, te=%.1f mm, Te=%.1f mm.", req.LayerMM, res.Demand.TotalElastomerMM),
			}, nil
		}
	}
	return Result{}, fmt.Errorf("%w up to %d layers", ErrNoFeasibleDesign, limit)
}
