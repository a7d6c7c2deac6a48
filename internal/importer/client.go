package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/liftlens/internal/models"
)

// Sink receives parsed workouts. The HTTP client posts to the server ingest
// endpoint; the import CLI can also insert straight into Postgres.
type Sink interface {
	SendWorkout(ctx context.Context, w models.Workout) (inserted bool, err error)
}

// Client sends workouts to the LiftLens server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: *Client satisfies Sink.
var _ Sink = (*Client)(nil)

// NewClient creates a new HTTP client for the LiftLens ingest endpoint.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendWorkout POSTs a workout to the ingest endpoint. Retries up to 3 times
// with exponential backoff on failure. Returns false when the server already
// had the workout.
func (c *Client) SendWorkout(ctx context.Context, w models.Workout) (bool, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return false, fmt.Errorf("marshaling workout: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.serverURL+"/api/v1/workouts", bytes.NewReader(data))
		if err != nil {
			return false, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusCreated:
			return true, nil
		case http.StatusOK:
			return false, nil // duplicate, already stored
		case http.StatusBadRequest:
			// Validation failures will not succeed on retry.
			return false, fmt.Errorf("ingest rejected workout: %s", body)
		}
		lastErr = fmt.Errorf("ingest failed (status %d): %s", resp.StatusCode, body)
	}

	return false, fmt.Errorf("after 3 attempts: %w", lastErr)
}
