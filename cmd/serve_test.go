package main

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridline-analytics/sitecast/internal/model"
	"github.com/gridline-analytics/sitecast/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(t.TempDir())
	require.NoError(t, st.WriteEVMTimeseries([]model.EVMRow{
		{ProjectID: "P1", WorkElementID: "W1", Period: "2025-01", EV: 500, PV: 500, AC: 400, BAC: 1000, CPI: 1.25, SPI: 1.0, EAC: 800, VAC: 200, CV: 100, SV: 0},
		{ProjectID: "P1", WorkElementID: "W2", Period: "2025-01", EV: math.NaN(), PV: 20, AC: 10, BAC: math.NaN(), CPI: math.NaN(), SPI: math.NaN(), EAC: math.NaN(), VAC: math.NaN(), CV: math.NaN(), SV: math.NaN()},
	}))
	require.NoError(t, st.WriteRuns([]model.Run{
		{ProjectID: "P1", EAC: 1_050_000, FinishDaysOverBaseline: 4},
	}))
	require.NoError(t, st.WriteSummary([]model.Summary{
		{ProjectID: "P1", EACP10: 1_000_000, EACP50: 1_100_000, EACP80: 1_250_000, FinishP10: 1, FinishP50: 5, FinishP80: 9},
	}))
	require.NoError(t, st.WriteCurve([]model.CurvePoint{
		{ProjectID: "P1", Metric: "EAC", Value: 1_000_000, CDF: 0.1},
	}))
	return st
}

func TestRouter_Health(t *testing.T) {
	r := newRouter(testStore(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_EVMTable(t *testing.T) {
	r := newRouter(testStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/evm", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "P1", rows[0]["project_id"])
	assert.InDelta(t, 1.25, rows[0]["cpi"].(float64), 1e-9)
	// Undefined KPIs serialize as null, not NaN.
	assert.Nil(t, rows[1]["cpi"])
	assert.Nil(t, rows[1]["eac"])
}

func TestRouter_SummaryTable(t *testing.T) {
	r := newRouter(testStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var summaries []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.InDelta(t, 1_250_000, summaries[0]["eac_p80"].(float64), 1e-9)
}

func TestRouter_RunsAndCurves(t *testing.T) {
	r := newRouter(testStore(t))

	for _, path := range []string{"/api/runs", "/api/curves"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, path)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
		assert.Len(t, rows, 1, path)
	}
}

func TestRouter_MissingTable(t *testing.T) {
	r := newRouter(store.New(t.TempDir()))

	req := httptest.NewRequest(http.MethodGet, "/api/evm", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "error")
}
