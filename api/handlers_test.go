package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidLHW/robot-salary-calculator/api"
	"github.com/DavidLHW/robot-salary-calculator/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(store), logger))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

const roboRateJSON = `{
  "standardDay": {"start": "07:00:00", "end": "23:00:00", "value": 20},
  "standardNight": {"start": "23:00:00", "end": "07:00:00", "value": 25},
  "extraDay": {"start": "07:00:00", "end": "23:00:00", "value": 30},
  "extraNight": {"start": "23:00:00", "end": "07:00:00", "value": 35}
}`

// =============================================================================
// QUOTE ENDPOINT
// =============================================================================

func TestQuoteShift_InlineRates(t *testing.T) {
	// GIVEN: The canonical overnight shift with an inline tariff
	// THEN: The truncated total comes back as {"value": 20550}

	srv := newTestServer(t)
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/shifts/quote", `{
	  "shift": {"start": "2038-01-01T20:15:00", "end": "2038-01-02T08:45:00"},
	  "roboRate": `+roboRateJSON+`
	}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var quote api.QuoteResponse
	require.NoError(t, json.Unmarshal(body, &quote))
	assert.Equal(t, int64(20550), quote.Value)
}

func TestQuoteShift_ByPlan(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/plans",
		`{"name": "standard", "roboRate": `+roboRateJSON+`}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var plan api.RatePlanDTO
	require.NoError(t, json.Unmarshal(body, &plan))
	require.NotEmpty(t, plan.ID)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/shifts/quote", `{
	  "shift": {"start": "2038-01-01T20:15:00", "end": "2038-01-02T08:45:00"},
	  "planId": "`+plan.ID+`"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quote api.QuoteResponse
	require.NoError(t, json.Unmarshal(body, &quote))
	assert.Equal(t, int64(20550), quote.Value)
}

func TestQuoteShift_UnknownPlan(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/shifts/quote", `{
	  "shift": {"start": "2038-01-01T20:15:00", "end": "2038-01-02T08:45:00"},
	  "planId": "nope"
	}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuoteShift_Rejections(t *testing.T) {
	srv := newTestServer(t)

	cases := map[string]string{
		"end before start": `{
		  "shift": {"start": "2038-01-02T08:45:00", "end": "2038-01-01T20:15:00"},
		  "roboRate": ` + roboRateJSON + `}`,
		"no tariff": `{
		  "shift": {"start": "2038-01-01T20:15:00", "end": "2038-01-02T08:45:00"}}`,
		"bad timestamp": `{
		  "shift": {"start": "yesterday", "end": "2038-01-02T08:45:00"},
		  "roboRate": ` + roboRateJSON + `}`,
		"not json": `]`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/shifts/quote", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

// =============================================================================
// RATE PLAN ENDPOINTS
// =============================================================================

func TestPlanLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Create
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/plans",
		`{"name": "standard", "roboRate": `+roboRateJSON+`}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var plan api.RatePlanDTO
	require.NoError(t, json.Unmarshal(body, &plan))
	assert.Equal(t, "standard", plan.Name)
	assert.Equal(t, 1, plan.Version)
	assert.Equal(t, "20", plan.RoboRate.StandardDay.Value.String())

	// List
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/plans", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var plans []api.RatePlanDTO
	require.NoError(t, json.Unmarshal(body, &plans))
	require.Len(t, plans, 1)

	// Update
	resp, body = doJSON(t, http.MethodPut, srv.URL+"/api/plans/"+plan.ID,
		`{"name": "standard-v2", "roboRate": `+roboRateJSON+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &plan))
	assert.Equal(t, "standard-v2", plan.Name)
	assert.Equal(t, 2, plan.Version)

	// Delete
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/plans/"+plan.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/plans/"+plan.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListPlans_NameFilter(t *testing.T) {
	srv := newTestServer(t)

	for _, name := range []string{"standard", "weekend"} {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/plans",
			`{"name": "`+name+`", "roboRate": `+roboRateJSON+`}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/plans?name=weekend", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var plans []api.RatePlanDTO
	require.NoError(t, json.Unmarshal(body, &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, "weekend", plans[0].Name)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/plans?name=nope", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &plans))
	assert.Empty(t, plans)
}

func TestCreatePlan_DuplicateName(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/plans",
		`{"name": "standard", "roboRate": `+roboRateJSON+`}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/plans",
		`{"name": "standard", "roboRate": `+roboRateJSON+`}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreatePlan_Invalid(t *testing.T) {
	srv := newTestServer(t)

	cases := map[string]string{
		"missing name":   `{"roboRate": ` + roboRateJSON + `}`,
		"missing tariff": `{"name": "standard"}`,
		"inverted window": `{"name": "standard", "roboRate": {
		  "standardDay": {"start": "23:00:00", "end": "07:00:00", "value": 20},
		  "standardNight": {"start": "07:00:00", "end": "23:00:00", "value": 25},
		  "extraDay": {"start": "07:00:00", "end": "23:00:00", "value": 30},
		  "extraNight": {"start": "23:00:00", "end": "07:00:00", "value": 35}}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/plans", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHeartbeat(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
