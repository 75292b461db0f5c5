package planner

import (
	"context"
	"errors"

	"github.com/onetrip/travel-planner/internal/llm"
)

// fakeClient is a canned-response llm.Client for tests.
type fakeClient struct {
	content  string
	err      error
	requests []*llm.CompletionRequest
}

func (f *fakeClient) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{
		Content: f.content,
		Model:   "fake-model",
	}, nil
}

func (f *fakeClient) Name() string { return "fake" }

func (f *fakeClient) Models() []string { return []string{"fake-model"} }

var errUpstream = errors.New("upstream unavailable")

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
