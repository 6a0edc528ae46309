package governance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the leveled logger consumed by the client.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the governance service, which owns violation and
// penalty state for units. The booking engine only asks one question:
// does this unit currently hold an active blocking penalty.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a governance service client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// HasActiveBlock reports whether the unit is currently barred from
// booking. Transport and decoding failures are returned as errors; the
// caller decides whether to fail closed or degrade.
func (c *Client) HasActiveBlock(ctx context.Context, unitID int64) (bool, error) {
	url := fmt.Sprintf("%s/internal/units/%d/block-status", c.baseURL, unitID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		// Unknown unit: no penalty record means no active block.
		return false, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var status UnitBlockStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if status.Blocked {
		c.log.Info("Unit %d holds an active block: %s", unitID, status.Reason)
	}
	return status.Blocked, nil
}
