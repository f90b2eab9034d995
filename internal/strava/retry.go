package strava

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrRetriesExceeded is returned after the backoff schedule is exhausted.
// Callers treat it like any other transient failure.
var ErrRetriesExceeded = errors.New("strava: exceeded maximum retries")

// Policy parameterizes the retry behavior of a RetryingClient.
type Policy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	Multiplier     int
	ShouldRetry    func(*http.Response) bool
}

// DefaultPolicy retries rate-limited responses up to five times with backoff
// doubling from one second.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:     5,
		InitialBackoff: time.Second,
		Multiplier:     2,
		ShouldRetry: func(resp *http.Response) bool {
			return resp.StatusCode == http.StatusTooManyRequests
		},
	}
}

// RetryingClient wraps an http.Client with bounded exponential backoff on
// retryable responses. Any response the policy accepts is returned
// immediately, success or not. The wrapper is usable for any outbound call,
// not just the fitness API.
type RetryingClient struct {
	client *http.Client
	policy Policy
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetryingClient creates a retrying wrapper around client.
func NewRetryingClient(client *http.Client, policy Policy) *RetryingClient {
	return &RetryingClient{
		client: client,
		policy: policy,
		sleep:  sleepContext,
	}
}

// Do issues the request, retrying per the policy. The request must have no
// body (or a rewindable one) since it is re-sent verbatim.
func (c *RetryingClient) Do(req *http.Request) (*http.Response, error) {
	backoff := c.policy.InitialBackoff
	for attempt := 0; attempt < c.policy.MaxRetries; attempt++ {
		resp, err := c.client.Do(req.Clone(req.Context()))
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}

		if !c.policy.ShouldRetry(resp) {
			return resp, nil
		}

		// Drain so the connection can be reused before backing off.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if err := c.sleep(req.Context(), backoff); err != nil {
			return nil, err
		}
		backoff *= time.Duration(c.policy.Multiplier)
	}
	return nil, ErrRetriesExceeded
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
