package common

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/CentipedeRTK/ticket-management-zammad/config"
)

// GrafanaClient runs read-only mount point lookups against the public
// Grafana datasource proxy that fronts the station registry.
type GrafanaClient struct {
	queryURL   string
	orgID      string
	dsUID      string
	dsID       int
	authHeader string
	client     *http.Client
}

func NewGrafanaClient(cfg config.Config) *GrafanaClient {
	return &GrafanaClient{
		queryURL:   cfg.GrafanaDSQueryURL,
		orgID:      cfg.GrafanaOrgID,
		dsUID:      cfg.GrafanaDSUID,
		dsID:       cfg.GrafanaDSID,
		authHeader: cfg.GrafanaAuthHeader,
		client:     &http.Client{Timeout: time.Duration(cfg.GrafanaTimeoutMs) * time.Millisecond},
	}
}

type dsDatasource struct {
	Type string `json:"type"`
	UID  string `json:"uid"`
}

type dsQuery struct {
	RefID         string       `json:"refId"`
	Datasource    dsDatasource `json:"datasource"`
	RawSQL        string       `json:"rawSql"`
	Format        string       `json:"format"`
	DatasourceID  int          `json:"datasourceId"`
	IntervalMs    int          `json:"intervalMs"`
	MaxDataPoints int          `json:"maxDataPoints"`
}

type dsQueryPayload struct {
	Queries []dsQuery `json:"queries"`
	From    string    `json:"from"`
	To      string    `json:"to"`
}

type dsQueryResponse struct {
	Results map[string]struct {
		Frames []struct {
			Data struct {
				Values [][]json.RawMessage `json:"values"`
			} `json:"data"`
		} `json:"frames"`
	} `json:"results"`
}

type dsErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// MountPointExists reports whether the registry already holds a station
// with the given code. mountPoint must be pre-validated to [A-Z0-9]{2,10};
// that restriction is what makes interpolating it into the query safe.
func (g *GrafanaClient) MountPointExists(ctx context.Context, mountPoint string) (bool, error) {
	if g.queryURL == "" {
		return false, NewStatusError(http.StatusInternalServerError, "mount point registry endpoint is not configured")
	}

	now := time.Now()
	payload := dsQueryPayload{
		Queries: []dsQuery{{
			RefID:         "A",
			Datasource:    dsDatasource{Type: "grafana-postgresql-datasource", UID: g.dsUID},
			RawSQL:        fmt.Sprintf(`SELECT 1 AS "x" FROM grafpub.antenne_mp WHERE mp = '%s' LIMIT 1;`, mountPoint),
			Format:        "table",
			DatasourceID:  g.dsID,
			IntervalMs:    60000,
			MaxDataPoints: 1,
		}},
		From: strconv.FormatInt(now.Add(-time.Minute).UnixMilli(), 10),
		To:   strconv.FormatInt(now.UnixMilli(), 10),
	}

	req, err := newJSONRequest(ctx, http.MethodPost, g.queryURL, payload)
	if err != nil {
		return false, err
	}
	req.Header.Add("X-Grafana-Org-Id", g.orgID)
	if g.authHeader != "" {
		req.Header.Add("Authorization", g.authHeader)
	}

	res, err := g.client.Do(req)
	if err != nil {
		return false, NewStatusError(http.StatusServiceUnavailable, "mount point registry is unreachable")
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		return false, NewStatusError(http.StatusServiceUnavailable, grafanaErrorMessage(res))
	}

	var out dsQueryResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return false, NewStatusError(http.StatusServiceUnavailable, "mount point registry returned an unreadable response")
	}

	return tableHasRows(out), nil
}

// tableHasRows checks the first data column of the first frame, the
// Grafana "table" format for row presence.
func tableHasRows(out dsQueryResponse) bool {
	result, ok := out.Results["A"]
	if !ok || len(result.Frames) == 0 {
		return false
	}
	values := result.Frames[0].Data.Values
	return len(values) > 0 && len(values[0]) > 0
}

func grafanaErrorMessage(res *http.Response) string {
	var e dsErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	return fmt.Sprintf("grafana HTTP %d", res.StatusCode)
}
