package llm

import (
	"context"
	"fmt"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
// Generate makes exactly one attempt; callers decide how to degrade.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the backend looks reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the LLMClient for cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(cfg, observer), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	default:
		return NewOllamaClient(cfg, observer), nil
	}
}

// callRecorder times one Generate call and reports it to the observer.
type callRecorder struct {
	observer  Observer
	estimator *TokenEstimator
	provider  Provider
	model     string
	task      TaskType
	prompt    string
	start     time.Time
}

func newCallRecorder(observer Observer, estimator *TokenEstimator, cfg LLMConfig, req GenerateRequest) *callRecorder {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &callRecorder{
		observer:  observer,
		estimator: estimator,
		provider:  cfg.Provider,
		model:     cfg.Model,
		task:      req.Task,
		prompt:    req.SystemPrompt + "\n" + req.UserPrompt,
		start:     time.Now(),
	}
}

// finish emits the event and converts text/err into the client result.
func (r *callRecorder) finish(text, model string, err error) (*GenerateResponse, error) {
	latency := time.Since(r.start).Milliseconds()
	if err == nil && text == "" {
		err = ErrEmptyResponse
	}
	if model == "" {
		model = r.model
	}
	r.observer.OnCallComplete(LLMCallEvent{
		Task:         r.task,
		Provider:     r.provider,
		Model:        model,
		LatencyMs:    latency,
		PromptTokens: r.estimator.Count(r.prompt),
		Success:      err == nil,
		ErrorCode:    errorCode(err),
	})
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
}

func withTaskTimeout(ctx context.Context, cfg LLMConfig, task TaskType) (context.Context, context.CancelFunc) {
	ms := cfg.TaskTimeout(task)
	if ms <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
}

func statusError(provider Provider, code int, body string) error {
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Errorf("%w: %s returned status %d: %s", ErrProviderError, provider, code, body)
}
