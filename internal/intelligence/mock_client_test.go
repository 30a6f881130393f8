package intelligence

import (
	"context"

	"github.com/alexanderramin/frontdesk/internal/llm"
)

// mockLLMClient returns a fixed response for testing.
type mockLLMClient struct {
	response string
	err      error
	lastReq  llm.GenerateRequest
	calls    int
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2", LatencyMs: 12}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }
