package detrack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dispatch-dashboard/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.DetrackConfig{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		PageLimit: 100,
		Sort:      "-created_at",
		JobType:   "Delivery",
	}, nil, zap.NewNop())
}

func defaultParams() QueryParams {
	return QueryParams{Page: 1, Limit: 100, Sort: "-created_at", Date: "2026-08-27", Type: "Delivery"}
}

func pageBody(ids []string, next string) []byte {
	type link struct {
		Next *string `json:"next"`
	}
	var jobs []map[string]interface{}
	for _, id := range ids {
		jobs = append(jobs, map[string]interface{}{"id": id, "primary_job_status": "completed"})
	}
	var nextPtr *string
	if next != "" {
		nextPtr = &next
	}
	b, _ := json.Marshal(map[string]interface{}{
		"data":  jobs,
		"links": link{Next: nextPtr},
	})
	return b
}

func TestFetchAllJobs_FollowsNextLinksInOrder(t *testing.T) {
	requests := 0
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		switch r.URL.Path {
		case "/jobs":
			// First page must carry the original query parameters.
			assert.Equal(t, "2026-08-27", r.URL.Query().Get("date"))
			assert.Equal(t, "Delivery", r.URL.Query().Get("type"))
			w.Write(pageBody([]string{"a", "b"}, srv.URL+"/jobs/page2"))
		case "/jobs/page2":
			// Next-link requests must not re-send the first-page parameters.
			assert.Empty(t, r.URL.Query().Get("date"))
			w.Write(pageBody([]string{"c"}, srv.URL+"/jobs/page3"))
		case "/jobs/page3":
			w.Write(pageBody([]string{"d"}, ""))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL + "/jobs")
	jobs, err := client.FetchAllJobs(context.Background(), defaultParams())
	require.NoError(t, err)

	assert.Equal(t, 3, requests, "one request per page")
	require.Len(t, jobs, 4)
	for i, want := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, want, jobs[i].ID)
	}
}

func TestFetchAllJobs_NonOKAbortsWithoutPartialData(t *testing.T) {
	requests := 0
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path == "/jobs" {
			w.Write(pageBody([]string{"a"}, srv.URL+"/jobs/page2"))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL + "/jobs")
	jobs, err := client.FetchAllJobs(context.Background(), defaultParams())

	require.Error(t, err)
	assert.Empty(t, jobs, "no partial accumulation on failure")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	assert.Equal(t, "upstream exploded", statusErr.Body)
	assert.Equal(t, 2, requests)
}

func TestFetchAllJobs_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pageBody(nil, ""))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL + "/jobs")
	jobs, err := client.FetchAllJobs(context.Background(), defaultParams())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestFetchAllJobs_ToleratesMalformedItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"a","primary_job_status":"failed","items":["not-an-object",{"description":"Crates"}]}],"links":{"next":null}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL + "/jobs")
	jobs, err := client.FetchAllJobs(context.Background(), defaultParams())
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	// First element was malformed, so the derived description is null.
	assert.False(t, jobs[0].FirstItemDescription().Valid)
	assert.Equal(t, "Crates", jobs[0].Items[1].Description.String)
}
