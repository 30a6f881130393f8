package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient using the Gemini API.
type geminiClient struct {
	cfg       LLMConfig
	client    *genai.Client
	observer  Observer
	estimator *TokenEstimator
}

// NewGeminiClient creates an LLMClient backed by Google's Gemini API.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{
		cfg:       cfg,
		client:    client,
		observer:  observer,
		estimator: NewTokenEstimator(),
	}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	rec := newCallRecorder(c.observer, c.estimator, c.cfg, req)

	ctx, cancel := withTaskTimeout(ctx, c.cfg, req.Task)
	defer cancel()

	temp, maxTok := c.cfg.resolveParams(req)
	t := float32(temp)
	gc := &genai.GenerateContentConfig{
		Temperature:     &t,
		MaxOutputTokens: int32(maxTok),
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	contents := []*genai.Content{genai.NewContentFromText(req.UserPrompt, genai.RoleUser)}

	res, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, contents, gc)
	if err != nil {
		return rec.finish("", "", classify(ctx, err))
	}
	return rec.finish(res.Text(), res.ModelVersion, nil)
}

func (c *geminiClient) Available(ctx context.Context) bool {
	return c.client != nil && c.cfg.APIKey != ""
}
