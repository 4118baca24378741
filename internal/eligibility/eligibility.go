// Package eligibility calls the download-eligibility collaborator before
// any export is generated.
package eligibility

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds the eligibility check; the collaborator must fail
// fast rather than hang an export indefinitely.
const DefaultTimeout = 15 * time.Second

// Result is the collaborator's verdict for a user.
type Result struct {
	IsEligible bool   `json:"is_eligible"`
	Message    string `json:"message,omitempty"`
}

// Error represents a failure while checking eligibility. Timeouts land
// here too and are retryable from the user's point of view.
type Error struct {
	UserID  uuid.UUID
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("eligibility check for %s: %s: %v", e.UserID, e.Message, e.Cause)
	}
	return fmt.Sprintf("eligibility check for %s: %s", e.UserID, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Checker is what the export path depends on; the HTTP client below is the
// production implementation.
type Checker interface {
	Check(ctx context.Context, userID uuid.UUID) (*Result, error)
}

// Client checks eligibility against an HTTP collaborator.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the collaborator at baseURL. A zero
// timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Check asks the collaborator whether the user may download exports.
func (c *Client) Check(ctx context.Context, userID uuid.UUID) (*Result, error) {
	endpoint, err := url.JoinPath(c.baseURL, "users", userID.String(), "eligibility")
	if err != nil {
		return nil, &Error{UserID: userID, Message: "invalid collaborator URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{UserID: userID, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{UserID: userID, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{UserID: userID, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Error{UserID: userID, Message: "failed to decode response", Cause: err}
	}
	return &result, nil
}
