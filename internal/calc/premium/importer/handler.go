package importer

import (
	"bytes"
	"encoding/json"
	"net/http"

	"Bearing/internal/calc/premium/batch"

	"go.uber.org/zap"
)

const (
	maxUpload = 10 << 20
	xlsxType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	Eval   batch.Evaluator
	Logger *zap.Logger
}

type ImportResult struct {
	Parsed
	batch.Result
}

// Bearing evaluates an uploaded workbook (multipart field "file").
func (h *Handler) Bearing(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	parsed, err := ParseWorkbook(file)
	if err != nil {
		http.Error(w, "Invalid file: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(parsed.Inputs) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(ImportResult{Parsed: parsed})
		return
	}
	res, err := batch.Calculate(r.Context(), batch.Input{Items: parsed.Inputs}, h.Eval)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("workbook imported",
			zap.Int("rows", len(parsed.Inputs)),
			zap.Int("row_errors", len(parsed.RowErrors)),
			zap.Int("failed", res.Failed))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Parsed: parsed, Result: res})
}

// Export evaluates a JSON batch and returns the results workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input batch.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := batch.Calculate(r.Context(), input, h.Eval)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := Export(res)
	if err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	writeXLSX(w, "bearing-results.xlsx", data)
}

// Template serves an empty import workbook.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	data, err := Template()
	if err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	writeXLSX(w, "bearing-import.xlsx", data)
}

func writeXLSX(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	bytes.NewReader(data).WriteTo(w)
}
