// Package jobs looks transcription jobs up by name and returns the raw
// result document plus whatever job status metadata the service exposes.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrJobNotFound reports that the service has no job under the requested
// name. Callers degrade the summary section instead of failing the run.
var ErrJobNotFound = errors.New("transcription job not found")

// Status is the job metadata the service returned alongside the results.
// Any field may be zero.
type Status struct {
	JobName        string `json:"jobName"`
	AccountID      string `json:"accountId"`
	State          string `json:"status"`
	LanguageCode   string `json:"languageCode"`
	MediaFile      string `json:"mediaFileUri"`
	MediaFormat    string `json:"mediaFormat"`
	SampleRateKHz  int    `json:"mediaSampleRateHertz"`
	VocabularyName string `json:"vocabularyName"`
	Redaction      bool   `json:"contentRedaction"`
}

// Client fetches a completed job's raw result bytes. Status may be nil when
// the service returned results without metadata.
type Client interface {
	Fetch(ctx context.Context, jobName string) ([]byte, *Status, error)
}

// HTTPClient talks to a job service over HTTP. The service answers
// GET {base}/jobs/{name} with {"job": {...}, "results": {...}} and 404 for
// unknown jobs.
type HTTPClient struct {
	c    *http.Client
	base string
}

// NewHTTPClient builds a client against the service base URL.
func NewHTTPClient(base string) *HTTPClient {
	return &HTTPClient{
		c:    &http.Client{Timeout: 60 * time.Second},
		base: base,
	}
}

type jobEnvelope struct {
	Job     *Status         `json:"job"`
	Results json.RawMessage `json:"results"`
}

// Fetch retrieves the job. An unknown name returns ErrJobNotFound.
func (h *HTTPClient) Fetch(ctx context.Context, jobName string) ([]byte, *Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+"/jobs/"+jobName, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch job %q: %w", jobName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, fmt.Errorf("job %q: %w", jobName, ErrJobNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, nil, fmt.Errorf("fetch job %q: %s: %s", jobName, resp.Status, string(body))
	}

	var env jobEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, nil, fmt.Errorf("decode job %q: %w", jobName, err)
	}
	if len(env.Results) == 0 {
		return nil, nil, fmt.Errorf("job %q: empty results", jobName)
	}
	return env.Results, env.Job, nil
}
