package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

// HTTPClassifier calls an external sentiment service over HTTP. The service
// accepts a JSON body with the text and language and answers with positive
// and negative scores in [0,1].
type HTTPClassifier struct {
	c   *http.Client
	url string

	// positiveThreshold and negativeThreshold turn the two raw scores
	// into a label. Negative wins first.
	positiveThreshold float64
	negativeThreshold float64
}

// NewHTTPClassifier builds a classifier against the given service base URL.
func NewHTTPClassifier(url string, positiveThreshold, negativeThreshold float64) *HTTPClassifier {
	return &HTTPClassifier{
		c:                 &http.Client{Timeout: 60 * time.Second},
		url:               url,
		positiveThreshold: positiveThreshold,
		negativeThreshold: negativeThreshold,
	}
}

type sentimentReq struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

type sentimentResp struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

// Classify posts the text to the service and maps its scores to a label.
// A 429 response is reported as throttling so the caller can retry.
func (h *HTTPClassifier) Classify(ctx context.Context, text, language string) (Classification, error) {
	b, _ := json.Marshal(sentimentReq{Text: text, Language: language})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url+"/sentiment", bytes.NewReader(b))
	if err != nil {
		return Classification{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(req)
	if err != nil {
		return Classification{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return Classification{}, fmt.Errorf("sentiment %s: %w", resp.Status, ErrThrottled)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Classification{}, fmt.Errorf("sentiment %s: %s", resp.Status, string(body))
	}

	var out sentimentResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Classification{}, fmt.Errorf("sentiment decode: %w", err)
	}
	return h.toClassification(out), nil
}

// toClassification applies the thresholds. The score carried with the label
// is signed so downstream trend math works on one axis.
func (h *HTTPClassifier) toClassification(r sentimentResp) Classification {
	switch {
	case r.Negative >= h.negativeThreshold:
		s := -r.Negative
		return Classification{Label: model.SentimentNegative, Score: &s}
	case r.Positive >= h.positiveThreshold:
		s := r.Positive
		return Classification{Label: model.SentimentPositive, Score: &s}
	default:
		s := 0.0
		return Classification{Label: model.SentimentNeutral, Score: &s}
	}
}
