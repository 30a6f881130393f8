package intelligence

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/frontdesk/internal/llm"
)

// LeadInfo is what the dashboard wants to know about a caller.
// Empty strings mean unknown.
type LeadInfo struct {
	Name     string
	Phone    string
	Interest string
	Source   string // "llm" or "summary"
}

var (
	leadNamePattern     = regexp.MustCompile(`User: ([^,\n]+)`)
	leadPhonePattern    = regexp.MustCompile(`Phone: ([^,\n]+)`)
	leadInterestPattern = regexp.MustCompile(`Interested in: (.+?)(?:\.|\n|$)`)
)

// LeadFromSummary reads the "User: X, Phone: Y, Interested in: Z" line the
// extraction prompt asks the model to keep in every summary.
func LeadFromSummary(summary string) LeadInfo {
	return LeadInfo{
		Name:     matchKnown(leadNamePattern, summary),
		Phone:    matchKnown(leadPhonePattern, summary),
		Interest: matchKnown(leadInterestPattern, summary),
		Source:   "summary",
	}
}

func matchKnown(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	v := strings.TrimSpace(m[1])
	if v == unknownSentinel {
		return ""
	}
	return v
}

const leadSystemPrompt = `You extract contact details from a short conversation summary.
Output ONLY a JSON object with the keys "name", "phone" and "product".
Use "Unknown" for anything the summary does not state.`

type leadJSON struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Product string `json:"product"`
}

// LeadExtractor asks the model for structured lead details and falls back
// to the summary pattern on any failure.
type LeadExtractor struct {
	client llm.LLMClient
}

// NewLeadExtractor returns an extractor; a nil client means summary parsing only.
func NewLeadExtractor(client llm.LLMClient) *LeadExtractor {
	return &LeadExtractor{client: client}
}

func (x *LeadExtractor) Extract(ctx context.Context, summary string) LeadInfo {
	if x == nil || x.client == nil || strings.TrimSpace(summary) == "" {
		return LeadFromSummary(summary)
	}

	resp, err := x.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskLead,
		SystemPrompt: leadSystemPrompt,
		UserPrompt:   fmt.Sprintf("Summary: %q", summary),
	})
	if err != nil {
		return LeadFromSummary(summary)
	}

	parsed, err := llm.ExtractJSON[leadJSON](resp.Text, nil)
	if err != nil {
		return LeadFromSummary(summary)
	}
	return LeadInfo{
		Name:     knownOrEmpty(parsed.Name),
		Phone:    knownOrEmpty(parsed.Phone),
		Interest: knownOrEmpty(parsed.Product),
		Source:   "llm",
	}
}

func knownOrEmpty(v string) string {
	v = strings.TrimSpace(v)
	if v == unknownSentinel {
		return ""
	}
	return v
}
