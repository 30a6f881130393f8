package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient implements LLMClient against any OpenAI-compatible chat API.
type openAIClient struct {
	cfg       LLMConfig
	client    *openai.Client
	observer  Observer
	estimator *TokenEstimator
}

// NewOpenAIClient creates an LLMClient using the chat completions API.
// cfg.Endpoint, when set, replaces the default base URL (Groq, vLLM, ...).
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		oc.BaseURL = cfg.Endpoint
	}
	return &openAIClient{
		cfg:       cfg,
		client:    openai.NewClientWithConfig(oc),
		observer:  observer,
		estimator: NewTokenEstimator(),
	}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	rec := newCallRecorder(c.observer, c.estimator, c.cfg, req)

	ctx, cancel := withTaskTimeout(ctx, c.cfg, req.Task)
	defer cancel()

	temp, maxTok := c.cfg.resolveParams(req)
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: float32(temp),
		MaxTokens:   maxTok,
	})
	if err != nil {
		return rec.finish("", "", classifyOpenAI(ctx, err))
	}
	if len(resp.Choices) == 0 {
		return rec.finish("", resp.Model, ErrEmptyResponse)
	}
	return rec.finish(resp.Choices[0].Message.Content, resp.Model, nil)
}

func classifyOpenAI(ctx context.Context, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(ProviderOpenAI, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return statusError(ProviderOpenAI, reqErr.HTTPStatusCode, reqErr.Error())
	}
	return classify(ctx, err)
}

func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, err := c.client.ListModels(ctx)
	if err == nil {
		return true
	}
	// Some compatible servers do not implement /models but still answer.
	var apiErr *openai.APIError
	return errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound
}
