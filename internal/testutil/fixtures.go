package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/frontdesk/internal/domain"
	"github.com/alexanderramin/frontdesk/internal/llm"
)

var testContentCounter atomic.Int64

// Content options
type ContentOption func(*domain.ContentEntry)

func WithContentID(id int) ContentOption {
	return func(c *domain.ContentEntry) {
		c.ID = id
	}
}

func WithContentBody(body string) ContentOption {
	return func(c *domain.ContentEntry) {
		c.Content = body
	}
}

// NewTestContent returns an entry with a unique id unless WithContentID is given.
func NewTestContent(keyword string, opts ...ContentOption) domain.ContentEntry {
	n := int(testContentCounter.Add(1))
	c := domain.ContentEntry{
		ID:      1000 + n,
		Keyword: keyword,
		Content: fmt.Sprintf("%s details.", keyword),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// SeedCorpus returns a small corpus with ids 1..3.
func SeedCorpus() []domain.ContentEntry {
	return []domain.ContentEntry{
		{ID: 1, Keyword: "Therapies", Content: "Mud therapy, hydrotherapy, massage and yoga."},
		{ID: 2, Keyword: "Location", Content: "Krishna Layout, Ganapathy, Coimbatore."},
		{ID: 3, Keyword: "Pricing", Content: "Consultation is 500 INR."},
	}
}

// Session field options
type FieldsOption func(*domain.SessionFields)

func WithName(name string) FieldsOption {
	return func(f *domain.SessionFields) {
		f.Name = &name
	}
}

func WithPhone(phone string) FieldsOption {
	return func(f *domain.SessionFields) {
		f.Phone = &phone
	}
}

func WithTopic(id int) FieldsOption {
	return func(f *domain.SessionFields) {
		f.MatchedTopicID = &id
	}
}

func WithTemplate(name string) FieldsOption {
	return func(f *domain.SessionFields) {
		f.Template = &name
	}
}

func NewTestFields(summary string, opts ...FieldsOption) domain.SessionFields {
	f := domain.SessionFields{Summary: summary}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Completion renders a model answer in the labeled format the extractor asks for.
// Empty arguments are omitted.
func Completion(name, phone, topic, template, summary, response string) string {
	var out string
	add := func(label, v string) {
		if v != "" {
			out += label + ": " + v + "\n"
		}
	}
	add("Name", name)
	add("Phone", phone)
	add("Topic", topic)
	add("Template", template)
	add("Summary", summary)
	add("Response", response)
	return out
}

// ScriptedLLMClient replays responses in order, repeating the last one.
// Set Err to fail every call. Safe for concurrent use.
type ScriptedLLMClient struct {
	Responses []string
	Err       error

	mu       sync.Mutex
	requests []llm.GenerateRequest
}

func NewScriptedLLMClient(responses ...string) *ScriptedLLMClient {
	return &ScriptedLLMClient{Responses: responses}
}

func (c *ScriptedLLMClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.requests)
	c.requests = append(c.requests, req)
	if c.Err != nil {
		return nil, c.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, llm.ErrTimeout
	}
	if len(c.Responses) == 0 {
		return nil, llm.ErrEmptyResponse
	}
	if n >= len(c.Responses) {
		n = len(c.Responses) - 1
	}
	return &llm.GenerateResponse{Text: c.Responses[n], Model: "scripted"}, nil
}

func (c *ScriptedLLMClient) Available(context.Context) bool { return c.Err == nil }

// Requests returns a copy of every request seen so far.
func (c *ScriptedLLMClient) Requests() []llm.GenerateRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.GenerateRequest(nil), c.requests...)
}
