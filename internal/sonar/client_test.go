package sonar_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALT-F4-LLC/sonarexport/internal/sonar"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) (*sonar.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return sonar.NewClientWithHTTPClient(server.Client(), server.URL+"/", "admin", "secret"), server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func makeIssues(start, n int) []map[string]any {
	issues := make([]map[string]any, n)
	for i := range issues {
		issues[i] = map[string]any{
			"key":      fmt.Sprintf("AX-%d", start+i),
			"rule":     "go:S100",
			"severity": "MAJOR",
			"type":     "CODE_SMELL",
			"status":   "OPEN",
		}
	}
	return issues
}

// pagedIssuesHandler serves pages of the given sizes with a fixed total.
// The last page additionally carries a facet.
func pagedIssuesHandler(t *testing.T, sizes []int, total int, calls *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/api/issues/search", r.URL.Path)
		assert.Equal(t, "my-project", r.URL.Query().Get("componentKeys"))
		assert.Equal(t, "500", r.URL.Query().Get("ps"))
		assert.Equal(t, "severities,types,rules,statuses", r.URL.Query().Get("facets"))

		page, err := strconv.Atoi(r.URL.Query().Get("p"))
		require.NoError(t, err)

		var issues []map[string]any
		offset := 0
		for i := 0; i < page-1 && i < len(sizes); i++ {
			offset += sizes[i]
		}
		if page-1 < len(sizes) {
			issues = makeIssues(offset, sizes[page-1])
		}

		resp := map[string]any{
			"total":  total,
			"p":      page,
			"ps":     500,
			"paging": map[string]int{"pageIndex": page, "pageSize": 500, "total": total},
			"issues": issues,
			"facets": []map[string]any{{
				"property": "severities",
				"values":   []map[string]any{{"val": "MAJOR", "count": page}},
			}},
		}
		writeJSON(t, w, resp)
	}
}

func TestSearchIssues_AccumulatesAllPages(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, pagedIssuesHandler(t, []int{500, 500, 37}, 1037, &calls))

	result, err := client.SearchIssues(context.Background(), "my-project")

	require.NoError(t, err)
	assert.Len(t, result.Issues, 1037)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, 1037, result.Total)
	assert.Equal(t, "AX-0", result.Issues[0].Key)
	assert.Equal(t, "AX-1036", result.Issues[1036].Key)

	// Facets come from the final page, not an aggregate of all pages.
	require.Len(t, result.Facets, 1)
	assert.Equal(t, 3, result.Facets[0].Values[0].Count)
}

func TestSearchIssues_StopsOnEmptyPage(t *testing.T) {
	var calls int32
	// Server claims 2000 issues but runs dry after the second page.
	client, _ := newTestClient(t, pagedIssuesHandler(t, []int{500, 500}, 2000, &calls))

	result, err := client.SearchIssues(context.Background(), "my-project")

	require.NoError(t, err)
	assert.Len(t, result.Issues, 1000)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSearchIssues_EmptyProject(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, pagedIssuesHandler(t, nil, 0, &calls))

	result, err := client.SearchIssues(context.Background(), "my-project")

	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearchIssues_FailedPageAborts(t *testing.T) {
	var calls int32
	ok := pagedIssuesHandler(t, []int{500, 500, 37}, 1037, &calls)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("p") == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		ok(w, r)
	}))

	result, err := client.SearchIssues(context.Background(), "my-project")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "page 2")

	var apiErr *sonar.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestClient_SendsBasicAuth(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "secret", pass)
		writeJSON(t, w, map[string]any{"issues": []any{}, "total": 0})
	}))

	_, err := client.SearchIssues(context.Background(), "p")
	require.NoError(t, err)
}

func TestClient_APIErrorMessages(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(t, w, map[string]any{"errors": []map[string]string{{"msg": "Component key 'p' not found"}}})
	}))

	_, err := client.Measures(context.Background(), "p", []string{"ncloc"})

	var apiErr *sonar.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, []string{"Component key 'p' not found"}, apiErr.Messages)
	assert.Contains(t, err.Error(), "not found")
}

func TestMeasures(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/measures/component", r.URL.Path)
		assert.Equal(t, "my-project", r.URL.Query().Get("component"))
		assert.Equal(t, "ncloc,sqale_rating", r.URL.Query().Get("metricKeys"))
		writeJSON(t, w, map[string]any{
			"component": map[string]any{
				"key": "my-project",
				"measures": []map[string]any{
					{"metric": "ncloc", "value": "1200"},
					{"metric": "sqale_rating"},
				},
			},
		})
	}))

	comp, err := client.Measures(context.Background(), "my-project", []string{"ncloc", "sqale_rating"})

	require.NoError(t, err)
	require.Len(t, comp.Measures, 2)
	require.NotNil(t, comp.Measures[0].Value)
	assert.Equal(t, "1200", *comp.Measures[0].Value)
	assert.Nil(t, comp.Measures[1].Value)
}

func TestMeasures_MissingComponent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"metrics": []any{}})
	}))

	comp, err := client.Measures(context.Background(), "ghost", []string{"ncloc"})

	assert.Nil(t, comp)
	assert.ErrorIs(t, err, sonar.ErrProjectNotFound)
}

func TestProjectStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/qualitygates/project_status", r.URL.Path)
		assert.Equal(t, "my-project", r.URL.Query().Get("projectKey"))
		writeJSON(t, w, map[string]any{
			"projectStatus": map[string]any{
				"status":       "ERROR",
				"analysisDate": "2026-10-01T10:00:00+0000",
				"conditions": []map[string]any{
					{"status": "ERROR", "metricKey": "coverage", "comparator": "LT", "errorThreshold": "80", "actualValue": "61.2"},
				},
			},
		})
	}))

	status, err := client.ProjectStatus(context.Background(), "my-project")

	require.NoError(t, err)
	assert.Equal(t, "ERROR", status.Status)
	require.Len(t, status.Conditions, 1)
	assert.Equal(t, "80", status.Conditions[0].ErrorThreshold)
}

func TestGateForProjectAndShow(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/qualitygates/get_by_project":
			assert.Equal(t, "my-project", r.URL.Query().Get("project"))
			writeJSON(t, w, map[string]any{"qualityGate": map[string]any{"id": 9, "name": "Sonar way", "default": true}})
		case "/api/qualitygates/show":
			assert.Equal(t, "9", r.URL.Query().Get("id"))
			writeJSON(t, w, map[string]any{
				"id": "9", "name": "Sonar way", "isDefault": true,
				"conditions": []map[string]any{{"id": 1, "metric": "coverage", "op": "LT", "error": "80"}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	ref, err := client.GateForProject(context.Background(), "my-project")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, sonar.GateID("9"), ref.ID)

	def, err := client.ShowGate(context.Background(), ref.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sonar way", def.Name)
	assert.True(t, def.IsDefault)
	assert.Len(t, def.Conditions, 1)
}

func TestGateForProject_NoGate(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{})
	}))

	ref, err := client.GateForProject(context.Background(), "my-project")

	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestAnalyses(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/project_analyses/search", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("ps"))
		writeJSON(t, w, map[string]any{
			"analyses": []map[string]any{
				{"key": "a1", "date": "2026-10-01T10:00:00+0000", "projectVersion": "1.2", "revision": "abc123",
					"events": []map[string]any{{"name": "1.2", "category": "VERSION"}}},
			},
		})
	}))

	analyses, err := client.Analyses(context.Background(), "my-project", sonar.HistorySize)

	require.NoError(t, err)
	require.Len(t, analyses, 1)
	assert.Equal(t, "abc123", analyses[0].Revision)
	assert.Equal(t, "1.2", analyses[0].Events[0].Name)
}

func TestGateID_Unmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  sonar.GateID
	}{
		{`"AU-Tpxb"`, "AU-Tpxb"},
		{`42`, "42"},
		{`null`, ""},
	}

	for _, tt := range tests {
		var id sonar.GateID
		require.NoError(t, json.Unmarshal([]byte(tt.input), &id), tt.input)
		assert.Equal(t, tt.want, id)
	}

	var id sonar.GateID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func newFastProber(c *sonar.Client, attempts int) *sonar.Prober {
	p := sonar.NewProber(c)
	p.MaxAttempts = attempts
	p.Interval = time.Millisecond
	p.Timeout = 200 * time.Millisecond
	return p
}

func TestProber_ReadyAfterFailures(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/system/status", r.URL.Path)
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, map[string]string{"status": "UP"})
	}))

	var retries []int
	p := newFastProber(client, 30)
	p.OnRetry = func(attempt, maxAttempts int, err error) {
		assert.Equal(t, 30, maxAttempts)
		assert.Error(t, err)
		retries = append(retries, attempt)
	}

	assert.True(t, p.Wait(context.Background()))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []int{1, 2}, retries)
}

func TestProber_BudgetExhausted(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	retries := 0
	p := newFastProber(client, 4)
	p.OnRetry = func(int, int, error) { retries++ }

	assert.False(t, p.Wait(context.Background()))
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Equal(t, 3, retries, "no retry notice after the final attempt")
}

func TestProber_NetworkErrorsAreRetried(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p := newFastProber(sonar.NewClient(url, "admin", "admin"), 3)
	retries := 0
	p.OnRetry = func(int, int, error) { retries++ }

	assert.False(t, p.Wait(context.Background()))
	assert.Equal(t, 2, retries)
}

func TestProber_TimeoutCountsAsFailure(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	p := newFastProber(client, 5)
	p.Timeout = 50 * time.Millisecond

	assert.True(t, p.Wait(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProber_CancelledContext(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	p := newFastProber(client, 30)
	p.Interval = time.Hour
	p.OnRetry = func(int, int, error) { cancel() }

	assert.False(t, p.Wait(ctx))
}
