package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/frontdesk/internal/llm"
)

// ExtractionFailure wraps any error from the completion call. Callers use it
// to degrade to a canned reply instead of surfacing provider errors.
type ExtractionFailure struct {
	Cause error
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("field extraction failed: %v", e.Cause)
}

func (e *ExtractionFailure) Unwrap() error { return e.Cause }

// Extraction is the parsed outcome of one completion call.
type Extraction struct {
	Fields    ParsedFields
	Raw       string
	Model     string
	LatencyMs int64
}

// Extractor turns a query plus session context into ParsedFields with a
// single completion call.
type Extractor struct {
	client   llm.LLMClient
	guidance *Guidance
}

func NewExtractor(client llm.LLMClient, guidance *Guidance) *Extractor {
	if guidance == nil {
		guidance = DefaultGuidance()
	}
	return &Extractor{client: client, guidance: guidance}
}

// Guidance returns the table the extractor prompts with.
func (x *Extractor) Guidance() *Guidance { return x.guidance }

// Extract calls the model once. Any client error is returned as *ExtractionFailure.
func (x *Extractor) Extract(ctx context.Context, in ExtractionInput) (*Extraction, error) {
	system, user := BuildExtractionPrompt(x.guidance, in)

	resp, err := x.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExtract,
		SystemPrompt: system,
		UserPrompt:   user,
	})
	if err != nil {
		return nil, &ExtractionFailure{Cause: err}
	}

	return &Extraction{
		Fields:    ParseCompletion(resp.Text, NewParseOptions(x.guidance, in.Topics)),
		Raw:       resp.Text,
		Model:     resp.Model,
		LatencyMs: resp.LatencyMs,
	}, nil
}
