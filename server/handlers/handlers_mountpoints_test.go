package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CentipedeRTK/ticket-management-zammad/config"
	"github.com/CentipedeRTK/ticket-management-zammad/server/common"
)

type fakeUniqueness struct {
	taken bool
	err   error
	calls int
	last  string
}

func (f *fakeUniqueness) MountPointExists(_ context.Context, mountPoint string) (bool, error) {
	f.calls++
	f.last = mountPoint
	if f.err != nil {
		return false, f.err
	}
	return f.taken, nil
}

func testConfig() config.Config {
	return config.Config{
		ZammadURL:            "http://zammad-nginx:8080",
		ZammadGroup:          "Declarations GNSS",
		ZammadToken:          "secret",
		HelpdeskName:         "Centipede-RTK Helpdesk",
		HelpdeskTermsURL:     "https://www.centipede-rtk.org/terms-conditions",
		GrafanaDSQueryURL:    "http://grafana.invalid/api/ds/query",
		GrafanaOrgID:         "7",
		GrafanaTimeoutMs:     8000,
		MountPointCacheTTLMs: 300000,
		CORSOrigins:          []string{"*"},
	}
}

func newTestApi(t *testing.T, cfg config.Config, ticketing TicketingClient, uniqueness UniquenessQuerier) *Api {
	t.Helper()
	return NewApi(cfg, ticketing, uniqueness)
}

func checkMountPoint(t *testing.T, api *Api, mp string) (int, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/mountpoints/check?mp="+mp, nil)
	rec := httptest.NewRecorder()

	require.NoError(t, api.HandleCheckMountPoint()(e.NewContext(req, rec)))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestCheckMountPointTaken(t *testing.T) {
	querier := &fakeUniqueness{taken: true}
	api := newTestApi(t, testConfig(), &fakeTicketing{}, querier)

	code, body := checkMountPoint(t, api, "AB12")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "AB12", body["mp"])
	assert.Equal(t, true, body["is_taken"])
	assert.Equal(t, 1, querier.calls)
}

func TestCheckMountPointMalformedSkipsQuery(t *testing.T) {
	querier := &fakeUniqueness{}
	api := newTestApi(t, testConfig(), &fakeTicketing{}, querier)

	code, body := checkMountPoint(t, api, "a")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, false, body["ok"])
	assert.NotEmpty(t, body["message"])
	assert.Zero(t, querier.calls)
}

func TestCheckMountPointDownstreamError(t *testing.T) {
	querier := &fakeUniqueness{err: common.NewStatusError(http.StatusServiceUnavailable, "mount point registry is unreachable")}
	api := newTestApi(t, testConfig(), &fakeTicketing{}, querier)

	code, body := checkMountPoint(t, api, "AB12")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, false, body["ok"])
}

func TestIsMountPointTakenUsesCacheWithinTTL(t *testing.T) {
	querier := &fakeUniqueness{taken: true}
	api := newTestApi(t, testConfig(), &fakeTicketing{}, querier)

	now := time.Unix(1_700_000_000, 0)
	api.mpCache.now = func() time.Time { return now }

	taken, mp, err := api.isMountPointTaken(context.Background(), "AB12")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.Equal(t, "AB12", mp)

	// Whitespace and case variants hit the same cache key.
	taken, _, err = api.isMountPointTaken(context.Background(), " ab12 ")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.Equal(t, 1, querier.calls)

	// Past the TTL the registry is asked again.
	now = now.Add(6 * time.Minute)
	_, _, err = api.isMountPointTaken(context.Background(), "AB12")
	require.NoError(t, err)
	assert.Equal(t, 2, querier.calls)
}

func TestIsMountPointTakenDoesNotCacheErrors(t *testing.T) {
	querier := &fakeUniqueness{err: common.NewStatusError(http.StatusServiceUnavailable, "down")}
	api := newTestApi(t, testConfig(), &fakeTicketing{}, querier)

	_, _, err := api.isMountPointTaken(context.Background(), "AB12")
	require.Error(t, err)

	querier.err = nil
	taken, _, err := api.isMountPointTaken(context.Background(), "AB12")
	require.NoError(t, err)
	assert.False(t, taken)
	assert.Equal(t, 2, querier.calls)
}
