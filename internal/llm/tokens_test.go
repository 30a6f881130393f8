package llm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenEstimator_Count(t *testing.T) {
	est := NewTokenEstimator()
	assert.Equal(t, 0, est.Count(""))
	short := est.Count("hello")
	long := est.Count(strings.Repeat("hello world ", 50))
	assert.Positive(t, short)
	assert.Greater(t, long, short)
}

func TestTokenEstimator_NilFallsBackToBytes(t *testing.T) {
	var est *TokenEstimator
	assert.Equal(t, 2, est.Count("12345678"))
}

func TestLogObserver_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(&buf)

	obs.OnCallComplete(LLMCallEvent{Task: TaskExtract, Provider: ProviderOllama, Model: "llama3.2", LatencyMs: 12, PromptTokens: 40, Success: true})
	obs.OnCallComplete(LLMCallEvent{Task: TaskLead, Provider: ProviderOpenAI, Model: "gpt", Success: false, ErrorCode: "TIMEOUT"})

	out := buf.String()
	assert.Contains(t, out, "msg=llm_call")
	assert.Contains(t, out, "task=extract")
	assert.Contains(t, out, "prompt_tokens=40")
	assert.Contains(t, out, "status=ok")
	assert.Contains(t, out, "status=err:TIMEOUT")
	assert.Contains(t, out, "level=WARN")
}
