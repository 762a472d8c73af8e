package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchInsightsDecodesPayload(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/insights", r.URL.Path)
		gotQuery = map[string]string{
			"startDate": r.URL.Query().Get("startDate"),
			"endDate":   r.URL.Query().Get("endDate"),
		}
		json.NewEncoder(w).Encode([]Insight{
			{
				ID:        "ins-1",
				Title:     "Subscription creep",
				Timestamp: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
				Score:     0.83,
				Data: []Point{
					{Timestamp: time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC), Value: decimal.NewFromFloat(42.50)},
				},
			},
			{ID: "ins-2", Title: "Focus hours trending up", Score: 0.61},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	insights, err := c.FetchInsights(context.Background(), start, end)
	require.NoError(t, err)

	require.Len(t, insights, 2)
	assert.Equal(t, "ins-1", insights[0].ID)
	assert.Equal(t, 0.83, insights[0].Score)
	require.Len(t, insights[0].Data, 1)
	assert.True(t, insights[0].Data[0].Value.Equal(decimal.NewFromFloat(42.50)))

	assert.Equal(t, start.Format(time.RFC3339), gotQuery["startDate"])
	assert.Equal(t, end.Format(time.RFC3339), gotQuery["endDate"])
}

func TestFetchInsightsOmitsZeroDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("startDate"))
		assert.False(t, r.URL.Query().Has("endDate"))
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchInsights(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
}

func TestFetchInsightsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchInsights(context.Background(), time.Time{}, time.Time{})
	require.Error(t, err)

	assert.Equal(t, MsgFetchInsights, err.Error(), "display message is fixed per operation")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.NotNil(t, apiErr.Unwrap(), "cause is kept for logs")
}

func TestFetchInsightsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nobody listening

	_, err := NewClient(srv.URL).FetchInsights(context.Background(), time.Time{}, time.Time{})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.Equal(t, MsgFetchInsights, err.Error())
}

func TestFetchInsightsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchInsights(context.Background(), time.Time{}, time.Time{})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindDecode, apiErr.Kind)
	assert.Equal(t, MsgFetchInsights, err.Error())
}

func TestUpdateSettingsSendsPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/settings", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "dark", patch["theme"])
		assert.Equal(t, true, patch["integrations.github"])

		json.NewEncoder(w).Encode(Settings{
			Theme:         ThemeDark,
			Notifications: true,
			Integrations:  map[string]bool{"github": true},
		})
	}))
	defer srv.Close()

	settings, err := NewClient(srv.URL).UpdateSettings(context.Background(), SettingsPatch{
		"theme":               "dark",
		"integrations.github": true,
	})
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, settings.Theme)
	assert.True(t, settings.Integrations["github"])
}

func TestUpdateSettingsNilIntegrationsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"theme":"light","notifications":false,"dataCollection":true}`))
	}))
	defer srv.Close()

	settings, err := NewClient(srv.URL).UpdateSettings(context.Background(), SettingsPatch{"theme": "light"})
	require.NoError(t, err)
	assert.NotNil(t, settings.Integrations)
}

func TestUpdateSettingsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad patch", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).UpdateSettings(context.Background(), SettingsPatch{"theme": "dark"})
	require.Error(t, err)
	assert.Equal(t, MsgUpdateSettings, err.Error())
}

func TestGenerateReportPostsToInsightPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/insights/ins-42/report", r.URL.Path)
		json.NewEncoder(w).Encode(Report{ID: "r1", Body: map[string]any{"summary": "ok"}})
	}))
	defer srv.Close()

	report, err := NewClient(srv.URL).GenerateReport(context.Background(), "ins-42")
	require.NoError(t, err)
	assert.Equal(t, "r1", report.ID)
	assert.Equal(t, "ins-42", report.InsightID, "missing insight id is backfilled")
	assert.Equal(t, "ok", report.Body["summary"])
}

func TestGenerateReportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GenerateReport(context.Background(), "nope")
	require.Error(t, err)
	// "not found" and "server down" are indistinguishable at the surface.
	assert.Equal(t, MsgGenerateReport, err.Error())
}

func TestExportDataReturnsRawPayload(t *testing.T) {
	payload := []byte("id,title\nins-1,Subscription creep\n")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("start"))
		assert.NotEmpty(t, r.URL.Query().Get("end"))
		w.Write(payload)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).ExportData(context.Background(), ExportCSV, time.Now().Add(-24*time.Hour), time.Now())
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestExportDataFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage offline", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ExportData(context.Background(), ExportJSON, time.Time{}, time.Time{})
	require.Error(t, err)
	assert.Equal(t, MsgExportData, err.Error())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)
}
