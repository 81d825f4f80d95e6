package facerecog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nerrad567/homegate/internal/reading"
)

const (
	defaultDetectTimeout = 10 * time.Second
	maxDetectorResponse  = 64 << 10
)

// ErrDetectFailed wraps detector transport and decoding failures.
var ErrDetectFailed = errors.New("facerecog: detection failed")

// Detection is one result from the detector.
type Detection struct {
	Detected  bool              `json:"detected"`
	Name      string            `json:"name"`
	Timestamp reading.Timestamp `json:"timestamp"`
}

// Detector runs a recognition on demand.
type Detector interface {
	Detect(ctx context.Context) (Detection, error)
}

// HTTPDetector asks a recognition service for a detection with
// POST {url}. The service answers {"detected", "name", "timestamp"}.
type HTTPDetector struct {
	url    string
	client *http.Client
}

// NewHTTPDetector creates a detector for url. A non-positive timeout uses
// the default.
func NewHTTPDetector(url string, timeout time.Duration) *HTTPDetector {
	if timeout <= 0 {
		timeout = defaultDetectTimeout
	}
	return &HTTPDetector{
		url:    strings.TrimRight(url, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// Detect implements Detector.
func (d *HTTPDetector) Detect(ctx context.Context) (Detection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, http.NoBody)
	if err != nil {
		return Detection{}, fmt.Errorf("%w: building request: %w", ErrDetectFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return Detection{}, fmt.Errorf("%w: %w", ErrDetectFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDetectorResponse))
	if err != nil {
		return Detection{}, fmt.Errorf("%w: reading response: %w", ErrDetectFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Detection{}, fmt.Errorf("%w: status %d: %s", ErrDetectFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var det Detection
	if err := json.Unmarshal(body, &det); err != nil {
		return Detection{}, fmt.Errorf("%w: decoding response: %w", ErrDetectFailed, err)
	}
	return det, nil
}
