package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/annel0/vector1/internal/calc"
	"github.com/annel0/vector1/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, maxBatch int) *RestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.NewLoggerWithOptions("api", logging.Options{MinConsoleLevel: logging.ERROR})
	require.NoError(t, err)
	logger.SetOutput(io.Discard)

	registry := prometheus.NewRegistry()
	return NewRestServer(Config{
		Evaluator:    calc.NewEvaluator(calc.NewMetrics(registry), logger),
		MaxBatchSize: maxBatch,
		Logger:       logger,
		Registerer:   registry,
		Gatherer:     registry,
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleEvaluate(t *testing.T) {
	rs := newTestServer(t, 0)

	w := doJSON(t, rs.Handler(), "POST", "/api/vec1/eval", `{"op":"clamp_magnitude","args":[5,2]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res calc.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, calc.KindVec1, res.Kind)
	assert.Equal(t, []calc.Number{-2}, res.Values)
	assert.Equal(t, "(-2)", res.Text)
}

func TestHandleEvaluateNonFinite(t *testing.T) {
	rs := newTestServer(t, 0)

	w := doJSON(t, rs.Handler(), "POST", "/api/vec1/eval", `{"op":"neg","args":["-Inf"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"op":"neg","kind":"vec1","values":["+Inf"],"text":"(+Inf)"}`, w.Body.String())
}

func TestHandleEvaluateErrors(t *testing.T) {
	rs := newTestServer(t, 0)

	tests := []struct {
		name    string
		body    string
		status  int
		outcome string
	}{
		{"деление на ноль", `{"op":"div","args":[4,0]}`, http.StatusUnprocessableEntity, "division_by_zero"},
		{"неизвестная операция", `{"op":"cross","args":[1,2]}`, http.StatusNotFound, "unknown_op"},
		{"неверная арность", `{"op":"angle","args":[1]}`, http.StatusBadRequest, "bad_arity"},
		{"нет op", `{"args":[1]}`, http.StatusBadRequest, "bad_request"},
		{"битый JSON", `{"op":`, http.StatusBadRequest, "bad_request"},
		{"нечисловой аргумент", `{"op":"new","args":["abc"]}`, http.StatusBadRequest, "bad_request"},
		{"null аргумент", `{"op":"add","args":[null,1]}`, http.StatusBadRequest, "bad_request"},
		{"null делитель", `{"op":"div","args":[4,null]}`, http.StatusBadRequest, "bad_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, rs.Handler(), "POST", "/api/vec1/eval", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			var res ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.NotEmpty(t, res.Error)
		})
	}
}

func TestHandleBatch(t *testing.T) {
	rs := newTestServer(t, 3)

	body := `{"requests":[{"op":"add","args":[1,2]},{"op":"div","args":[1,0]},{"op":"back"}]}`
	w := doJSON(t, rs.Handler(), "POST", "/api/vec1/batch", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Results, 3)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, "(3)", res.Results[0].Result.Text)
	assert.Nil(t, res.Results[1].Result)
	assert.Contains(t, res.Results[1].Error, "division by zero")
	assert.Equal(t, "(1)", res.Results[2].Result.Text)

	tooLarge := `{"requests":[{"op":"one"},{"op":"one"},{"op":"one"},{"op":"one"}]}`
	w = doJSON(t, rs.Handler(), "POST", "/api/vec1/batch", tooLarge)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListOperations(t *testing.T) {
	rs := newTestServer(t, 0)

	w := doJSON(t, rs.Handler(), "GET", "/api/vec1/ops", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Operations []calc.Operation `json:"operations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Operations, len(calc.Names()))

	found := false
	for _, op := range res.Operations {
		if op.Name == "div" {
			found = true
			assert.Equal(t, 2, op.Arity)
			assert.Equal(t, calc.KindVec1, op.Kind)
		}
	}
	assert.True(t, found, "div должен быть в списке")
}

func TestHealthAndMetrics(t *testing.T) {
	rs := newTestServer(t, 0)

	w := doJSON(t, rs.Handler(), "GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	doJSON(t, rs.Handler(), "POST", "/api/vec1/eval", `{"op":"div","args":[1,0]}`)

	w = doJSON(t, rs.Handler(), "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	metrics := w.Body.String()
	assert.Contains(t, metrics, `vec1_operations_total{op="div",outcome="division_by_zero"} 1`)
	assert.Contains(t, metrics, "rest_api_http_request_errors_total")
}

func TestServerInfo(t *testing.T) {
	rs := newTestServer(t, 0)

	w := doJSON(t, rs.Handler(), "GET", "/api/server", "")
	require.Equal(t, http.StatusOK, w.Code)

	var info ServerInfo
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&info))
	assert.Equal(t, version, info.Version)
	assert.Equal(t, len(calc.Names()), info.Operations)
	assert.Positive(t, info.Goroutines)
}

func TestCORSPreflight(t *testing.T) {
	rs := newTestServer(t, 0)

	w := doJSON(t, rs.Handler(), "OPTIONS", "/api/vec1/eval", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	rs := newTestServer(t, 0)
	rs.port = ln.Addr().String()

	err = rs.Start()
	require.Error(t, err, "занятый порт должен вернуть ошибку из Start")
	assert.Contains(t, err.Error(), rs.port)
}

func TestStartStop(t *testing.T) {
	rs := newTestServer(t, 0)
	rs.port = "127.0.0.1:0"

	require.NoError(t, rs.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, rs.Stop(ctx))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5s", formatUptime(5*time.Second))
	assert.Equal(t, "2m 3s", formatUptime(2*time.Minute+3*time.Second))
	assert.Equal(t, "1h 0m 0s", formatUptime(time.Hour))
	assert.Equal(t, "1d 2h 0m 0s", formatUptime(26*time.Hour))
}
