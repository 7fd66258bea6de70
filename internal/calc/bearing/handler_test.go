package bearing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Bearing/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/bearing/calc", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandler_Calc(t *testing.T) {
	h := &Handler{}
	rec := postJSON(t, h.Calc, scenarioA())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InEpsilon(t, 6.667, res.Demand.StressMPa, tol)
	assert.False(t, res.OK)
	assert.Len(t, res.Verdicts, 6)
}

func TestHandler_CalcRejectsBadPayload(t *testing.T) {
	h := &Handler{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request payload")
}

func TestHandler_CalcFatalErrorIsUnprocessable(t *testing.T) {
	h := &Handler{}
	in := scenarioA()
	in.Elastomer = "EPDM"
	rec := postJSON(t, h.Calc, in)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown material")
}

func TestHandler_Materials(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	h.Materials(rec, httptest.NewRequest(http.MethodGet, "/api/materials", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var l Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	assert.Len(t, l.Isolators, 2)
}

func TestHandler_EvaluateUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	h := &Handler{Cache: cache.NewRedisKVStore(client), TTL: time.Minute}
	ctx := context.Background()

	first, err := h.Evaluate(ctx, scenarioB())
	require.NoError(t, err)

	key, err := cache.Key(cachePrefix, scenarioB())
	require.NoError(t, err)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	second, err := h.Evaluate(ctx, scenarioB())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHandler_EvaluateServesCachedEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	key, err := cache.Key(cachePrefix, scenarioA())
	require.NoError(t, err)
	require.NoError(t, mr.Set(key, `{"project":"from-cache","verdicts":[]}`))

	h := &Handler{Cache: cache.NewRedisKVStore(client), TTL: time.Minute}
	res, err := h.Evaluate(context.Background(), scenarioA())
	require.NoError(t, err)
	assert.Equal(t, "from-cache", res.Project)
}

func TestHandler_EvaluateIgnoresBrokenCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	key, err := cache.Key(cachePrefix, scenarioA())
	require.NoError(t, err)
	require.NoError(t, mr.Set(key, "garbage"))

	h := &Handler{Cache: cache.NewRedisKVStore(client)}
	res, err := h.Evaluate(context.Background(), scenarioA())
	require.NoError(t, err)
	assert.Len(t, res.Verdicts, 6)

	// an unreachable server does not fail the evaluation either
	mr.Close()
	res, err = h.Evaluate(context.Background(), scenarioB())
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestHandler_EvaluateFatalErrorNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	h := &Handler{Cache: cache.NewRedisKVStore(client), TTL: time.Minute}
	in := scenarioA()
	in.LayerMM = 0
	_, err := h.Evaluate(context.Background(), in)
	assert.ErrorIs(t, err, ErrNonPositiveDimension)
	assert.Empty(t, mr.Keys())
}

func TestHandler_EvaluateCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Handler{}).Evaluate(ctx, scenarioA())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, http.StatusInternalServerError, StatusFor(err))
}
