package bearing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"Bearing/internal/cache"

	"go.uber.org/zap"
)

const cachePrefix = "bearing:calc"

type Handler struct {
	Logger *zap.Logger
	Cache  cache.KVStore // optional
	TTL    time.Duration
}

func (h *Handler) log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Evaluate(r.Context(), input)
	if err != nil {
		h.log().Info("bearing calculation rejected", zap.Error(err))
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Materials lists the catalog.
func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Materials())
}

// Evaluate runs Calculate through the optional cache. Cache failures are
// logged and never fail the evaluation.
func (h *Handler) Evaluate(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if h.Cache == nil {
		return Calculate(in)
	}

	key, err := cache.Key(cachePrefix, in)
	if err != nil {
		return Calculate(in)
	}
	if raw, err := h.Cache.Get(ctx, key); err == nil {
		var res Result
		if err := json.Unmarshal([]byte(raw), &res); err == nil {
			return res, nil
		}
		h.log().Warn("discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		h.log().Warn("cache read failed", zap.Error(err))
	}

	res, err := Calculate(in)
	if err != nil {
		return Result{}, err
	}
	if b, err := json.Marshal(res); err == nil {
		if err := h.Cache.Set(ctx, key, string(b), h.TTL); err != nil {
			h.log().Warn("cache write failed", zap.Error(err))
		}
	}
	return res, nil
}
