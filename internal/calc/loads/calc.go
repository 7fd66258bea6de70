package loads

import (
	"fmt"
	"math"

	"Bearing/internal/calc/bearing"
)

// Method selects the EN 1990 fundamental combination expression.
type Method string

const (
	Method610  Method = "6.10"
	Method610a Method = "6.10a"
	Method610b Method = "6.10b"
)

// DefaultPsi2 is the quasi-permanent factor for road traffic (EN 1990 A2).
const DefaultPsi2 = 0.2

// Input holds characteristic actions on one bearing, kN.
type Input struct {
	Method   Method  `json:"method"`
	LoadGKN  float64 `json:"load_g_kn"`
	LoadQKN  float64 `json:"load_q_kn"`
	LoadHxKN float64 `json:"load_hx_kn"`
	LoadHyKN float64 `json:"load_hy_kn"`
	Psi0     float64 `json:"psi0"`
	Psi2     float64 `json:"psi2"`
}

type Result struct {
	FzKN        float64 `json:"fz_kn"`
	FzMinKN     float64 `json:"fz_min_kn"`
	FzSeismicKN float64 `json:"fz_seismic_kn"`
	FxKN        float64 `json:"fx_kn"`
	FyKN        float64 `json:"fy_kn"`
	ComboName   string  `json:"combo_name"`
	Notes       string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if in.LoadGKN <= 0 {
		return Result{}, fmt.Errorf("invalid permanent load")
	}
	if in.LoadQKN < 0 {
		return Result{}, fmt.Errorf("invalid variable load")
	}
	if in.Psi2 <= 0 {
		in.Psi2 = DefaultPsi2
	}
	if in.Psi0 <= 0 {
		in.Psi0 = 0.75
	}
	gG, gQ, psiQ, name := factors(in.Method, in.Psi0)

	return Result{
		FzKN:        gG*in.LoadGKN + gQ*psiQ*in.LoadQKN,
		FzMinKN:     in.LoadGKN,
		FzSeismicKN: in.LoadGKN + in.Psi2*in.LoadQKN,
		FxKN:        gQ * psiQ * in.LoadHxKN,
		FyKN:        gQ * psiQ * in.LoadHyKN,
		ComboName:   name,
		Notes:       "Vertical ULS combination, permanent minimum and seismic quasi-permanent combination.",
	}, nil
}

func factors(method Method, psi0 float64) (gG, gQ, psiQ float64, name string) {
	switch method {
	case Method610a:
		return 1.35, 1.5, psi0, "EN 1990 (6.10a)"
	case Method610b:
		return 0.85 * 1.35, 1.5, 1, "EN 1990 (6.10b)"
	default:
		return 1.35, 1.5, 1, "EN 1990 (6.10)"
	}
}

// Apply copies the combined actions onto a bearing request. Seismic
// requests take the quasi-permanent vertical load.
func Apply(r Result, in *bearing.Input) {
	if in.Mode == bearing.ModeSeismic {
		in.FzKN = r.FzSeismicKN
		in.FzMinKN = r.FzSeismicKN
		return
	}
	in.FzKN = r.FzKN
	in.FzMinKN = r.FzMinKN
	in.FxKN = math.Abs(r.FxKN)
	in.FyKN = math.Abs(r.FyKN)
}
