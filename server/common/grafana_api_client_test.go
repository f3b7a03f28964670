package common

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CentipedeRTK/ticket-management-zammad/config"
)

func grafanaTestConfig(url string) config.Config {
	return config.Config{
		GrafanaDSQueryURL: url,
		GrafanaOrgID:      "7",
		GrafanaDSUID:      "ef4dj94eoifpcf",
		GrafanaDSID:       24,
		GrafanaTimeoutMs:  8000,
	}
}

func TestMountPointExistsQueryShape(t *testing.T) {
	var gotOrg string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrg = r.Header.Get("X-Grafana-Org-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_, _ = w.Write([]byte(`{"results":{"A":{"frames":[{"data":{"values":[[1]]}}]}}}`))
	}))
	defer srv.Close()

	client := NewGrafanaClient(grafanaTestConfig(srv.URL))
	taken, err := client.MountPointExists(context.Background(), "AB12")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.Equal(t, "7", gotOrg)

	queries, ok := gotPayload["queries"].([]any)
	require.True(t, ok)
	require.Len(t, queries, 1)
	q, ok := queries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A", q["refId"])
	assert.Equal(t, "table", q["format"])
	assert.Equal(t, float64(24), q["datasourceId"])
	assert.Equal(t, `SELECT 1 AS "x" FROM grafpub.antenne_mp WHERE mp = 'AB12' LIMIT 1;`, q["rawSql"])
}

func TestMountPointExistsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":{"A":{"frames":[{"data":{"values":[[]]}}]}}}`))
	}))
	defer srv.Close()

	client := NewGrafanaClient(grafanaTestConfig(srv.URL))
	taken, err := client.MountPointExists(context.Background(), "AB12")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestMountPointExistsUnconfigured(t *testing.T) {
	client := NewGrafanaClient(grafanaTestConfig(""))
	_, err := client.MountPointExists(context.Background(), "AB12")

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.Status)
}

func TestMountPointExistsHTTPErrorMapsTo503(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"datasource is down"}`))
	}))
	defer srv.Close()

	client := NewGrafanaClient(grafanaTestConfig(srv.URL))
	_, err := client.MountPointExists(context.Background(), "AB12")

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusServiceUnavailable, serr.Status)
	assert.Equal(t, "datasource is down", serr.Message)
}

func TestMountPointExistsUnreachableMapsTo503(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewGrafanaClient(grafanaTestConfig(srv.URL))
	_, err := client.MountPointExists(context.Background(), "AB12")

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusServiceUnavailable, serr.Status)
}

func TestMountPointExistsAuthHeaderForwarded(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"results":{}}`))
	}))
	defer srv.Close()

	cfg := grafanaTestConfig(srv.URL)
	cfg.GrafanaAuthHeader = "Bearer gf-token"
	client := NewGrafanaClient(cfg)

	_, err := client.MountPointExists(context.Background(), "AB12")
	require.NoError(t, err)
	assert.Equal(t, "Bearer gf-token", gotAuth)
}
