package report

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"Bearing/internal/calc/bearing"

	"go.uber.org/zap"
)

type Input struct {
	Title   string        `json:"title"`
	Author  string        `json:"author"`
	Bearing bearing.Input `json:"bearing"`
}

type Handler struct {
	Eval   func(ctx context.Context, in bearing.Input) (bearing.Result, error)
	Logger *zap.Logger
	Now    func() time.Time
}

func (h *Handler) prepare(w http.ResponseWriter, r *http.Request) (Meta, bearing.Result, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return Meta{}, bearing.Result{}, false
	}
	eval := h.Eval
	if eval == nil {
		eval = func(_ context.Context, in bearing.Input) (bearing.Result, error) { return bearing.Calculate(in) }
	}
	res, err := eval(r.Context(), input.Bearing)
	if err != nil {
		http.Error(w, err.Error(), bearing.StatusFor(err))
		return Meta{}, bearing.Result{}, false
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	m := NewMeta(input.Title, input.Author, now())
	if h.Logger != nil {
		h.Logger.Info("report generated", zap.String("report_no", m.Number), zap.String("bearing_id", res.BearingID))
	}
	return m, res, true
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	m, res, ok := h.prepare(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, m, res); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+m.Number+".pdf\"")
	buf.WriteTo(w)
}

func (h *Handler) Text(w http.ResponseWriter, r *http.Request) {
	m, res, ok := h.prepare(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+m.Number+".txt\"")
	WriteText(w, m, res)
}
