package culler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/bmdash/internal/culler"
	"github.com/nikbrunner/bmdash/internal/model"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/no-head", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckURLs(t *testing.T) {
	srv := newServer(t)

	bookmarks := []model.Bookmark{
		{ID: "1", Name: "ok", URL: srv.URL + "/ok", Category: "work"},
		{ID: "2", Name: "gone", URL: srv.URL + "/gone", Category: "work"},
		{ID: "3", Name: "missing", URL: srv.URL + "/missing", Category: "news"},
		{ID: "4", Name: "broken", URL: srv.URL + "/broken", Category: "news"},
		{ID: "5", Name: "no-head", URL: srv.URL + "/no-head", Category: "tools"},
		{ID: "6", Name: "refused", URL: "http://127.0.0.1:1/", Category: "tools"},
	}

	var calls atomic.Int32
	results := culler.CheckURLs(context.Background(), bookmarks, culler.Options{
		Concurrency: 3,
		Timeout:     5 * time.Second,
		OnProgress:  func(completed, total int) { calls.Add(1) },
	})

	assert.Equal(t, len(results), len(bookmarks))
	assert.Equal(t, int(calls.Load()), len(bookmarks))

	want := []culler.Status{culler.Healthy, culler.Dead, culler.Dead, culler.Unreachable, culler.Healthy, culler.Unreachable}
	for i, r := range results {
		assert.Equal(t, r.Bookmark.ID, bookmarks[i].ID)
		assert.Equal(t, r.Status, want[i], "bookmark %s", r.Bookmark.Name)
	}
	assert.Equal(t, results[3].Error, "Internal Server Error")
	assert.Equal(t, results[5].StatusCode, 0)
}

func TestCheckURLs_ExcludedDomain(t *testing.T) {
	srv := newServer(t)
	host := strings.TrimPrefix(srv.URL, "http://")
	host = host[:strings.LastIndex(host, ":")]

	results := culler.CheckURLs(context.Background(), []model.Bookmark{
		{ID: "1", URL: srv.URL + "/missing"},
	}, culler.Options{Concurrency: 1, Timeout: 5 * time.Second, ExcludeDomains: []string{host}})

	assert.Equal(t, results[0].Status, culler.Unreachable)
	assert.Equal(t, results[0].Error, "Possibly private (auth required)")
}

func TestCheckURLs_Cancelled(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := culler.CheckURLs(ctx, []model.Bookmark{
		{ID: "1", URL: srv.URL + "/ok"},
	}, culler.Options{Concurrency: 1, Timeout: time.Second})

	assert.Equal(t, results[0].Status, culler.Unreachable)
}

func TestCheckURLs_NonWebSchemesSkipped(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"mailto", "mailto:me@example.com"},
		{"file", "file:///home/me/notes.txt"},
		{"ftp", "ftp://ftp.example.com/pub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := culler.CheckURLs(context.Background(), []model.Bookmark{
				{ID: "1", URL: tt.url, Category: "general"},
			}, culler.Options{Concurrency: 1, Timeout: time.Second})

			assert.Equal(t, results[0].Status, culler.Skipped)
			assert.Equal(t, results[0].Error, "Not a web link")
			assert.Equal(t, len(culler.GroupByCategory(results)), 0)
		})
	}
}

func TestCheckURLs_Empty(t *testing.T) {
	assert.Assert(t, culler.CheckURLs(context.Background(), nil, culler.Options{}) == nil)
}

func TestGroupByCategory(t *testing.T) {
	a := model.Bookmark{ID: "a", Category: "work"}
	b := model.Bookmark{ID: "b", Category: "work"}
	c := model.Bookmark{ID: "c", Category: "news"}

	groups := culler.GroupByCategory([]culler.Result{
		{Bookmark: &a, Status: culler.Dead},
		{Bookmark: &b, Status: culler.Healthy},
		{Bookmark: &c, Status: culler.Unreachable},
	})

	assert.Equal(t, len(groups), 2)
	assert.Equal(t, len(groups["work"]), 1)
	assert.Equal(t, groups["news"][0].Bookmark.ID, "c")
}
