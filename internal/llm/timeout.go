package llm

import (
	"context"
	"time"
)

// timeoutClient bounds every completion call with a deadline.
type timeoutClient struct {
	inner   Client
	timeout time.Duration
}

// WithTimeout wraps a client so each Complete call is cancelled after the
// given duration. A non-positive duration returns the client unchanged.
func WithTimeout(c Client, timeout time.Duration) Client {
	if timeout <= 0 {
		return c
	}
	return &timeoutClient{inner: c, timeout: timeout}
}

func (t *timeoutClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Complete(ctx, req)
}

func (t *timeoutClient) Name() string { return t.inner.Name() }

func (t *timeoutClient) Models() []string { return t.inner.Models() }
