// Package transcribe provides an HTTP client for the transcription service.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mkondo/taskping/internal/domain"
)

const requestTimeout = 60 * time.Second

// Client calls an external speech-to-text service. Failures surface as
// ErrTranscribeFailed so the front end can tell the user to try again;
// they are never retried here.
type Client struct {
	client *http.Client
	url    string
}

type request struct {
	AudioRef string `json:"audioRef"`
}

type response struct {
	Text string `json:"text"`
}

// New creates a transcriber client for the given endpoint.
func New(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// Transcribe resolves an audio reference to text.
func (c *Client) Transcribe(ctx context.Context, audioRef string) (string, error) {
	body, err := json.Marshal(request{AudioRef: audioRef})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscribeFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: service returned %s", domain.ErrTranscribeFailed, resp.Status)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrTranscribeFailed, err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("%w: empty transcript", domain.ErrTranscribeFailed)
	}
	return out.Text, nil
}

// Ensure Client implements Transcriber.
var _ domain.Transcriber = (*Client)(nil)
