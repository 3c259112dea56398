package jobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs/call-42" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"job": {"jobName": "call-42", "status": "COMPLETED", "languageCode": "en-US", "mediaSampleRateHertz": 8},
			"results": {"results": {"items": []}}
		}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)

	raw, status, err := c.Fetch(context.Background(), "call-42")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(string(raw), `"items"`) {
		t.Errorf("raw results = %s", raw)
	}
	if status == nil || status.JobName != "call-42" || status.State != "COMPLETED" {
		t.Errorf("status = %+v", status)
	}

	_, _, err = c.Fetch(context.Background(), "missing")
	if !errors.Is(err, ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestFetchNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": {"results": {}}}`))
	}))
	defer srv.Close()

	_, status, err := NewHTTPClient(srv.URL).Fetch(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if status != nil {
		t.Errorf("status = %+v, want nil when service omits metadata", status)
	}
}

func TestFetchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"job": {"jobName": "x"}}`))
	}))
	defer srv.Close()

	_, _, err := NewHTTPClient(srv.URL).Fetch(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error for results-less job")
	}
}
