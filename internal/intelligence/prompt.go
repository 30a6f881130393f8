package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/frontdesk/internal/domain"
)

// ExtractionInput is everything the single completion call needs to know.
type ExtractionInput struct {
	Query        string
	KnownName    *string
	KnownPhone   *string
	Topics       []domain.ContentEntry
	PriorSummary string
}

// DefaultTopicID is the topic the model falls back to on an ambiguous match.
// ok is false when there are no topics.
func (in ExtractionInput) DefaultTopicID() (int, bool) {
	if len(in.Topics) == 0 {
		return 0, false
	}
	return in.Topics[0].ID, true
}

// BuildExtractionPrompt renders the system and user prompts for one query.
func BuildExtractionPrompt(g *Guidance, in ExtractionInput) (system, user string) {
	system = g.Persona

	var b strings.Builder

	if in.PriorSummary != "" {
		fmt.Fprintf(&b, "Chat history summary: %s\n\n", in.PriorSummary)
	}
	fmt.Fprintf(&b, "Analyze this user query carefully: %q\n\n", in.Query)

	b.WriteString("AVAILABLE CONTENT:\n")
	for _, t := range in.Topics {
		fmt.Fprintf(&b, "Content ID %d (%s):\n%s\n", t.ID, t.Keyword, strings.TrimSpace(t.Content))
	}
	b.WriteString("\n")

	// Task 1 and 2: caller details.
	if in.KnownName != nil {
		fmt.Fprintf(&b, "Task 1: The user's name is already known to be %q. If the user asks about their name, tell them. "+
			"Only report a different name if the query clearly gives one.\n", *in.KnownName)
	} else {
		b.WriteString("Task 1: Extract the user's name from the query if given.\n")
	}
	b.WriteString("Return the name as a single word or phrase (e.g. 'John') or 'Unknown' if no name is found.\n\n")
	if in.KnownPhone != nil {
		fmt.Fprintf(&b, "Task 2: The user's phone number is already known to be %q. "+
			"Only report a different number if the query clearly gives one.\n", *in.KnownPhone)
	} else {
		b.WriteString("Task 2: Extract the user's phone number from the query if given.\n")
	}
	b.WriteString("Return just the digits of the phone number or 'Unknown' if no phone number is found.\n\n")

	// Task 3: topic.
	if def, ok := in.DefaultTopicID(); ok {
		ids := make([]string, len(in.Topics))
		for i, t := range in.Topics {
			ids[i] = fmt.Sprintf("%d (%s)", t.ID, t.Keyword)
		}
		fmt.Fprintf(&b, "Task 3: Pick exactly one content ID that best matches the query from: %s. "+
			"Never answer none; if nothing matches clearly, use %d.\n\n", strings.Join(ids, ", "), def)
	} else {
		b.WriteString("Task 3: No content is available, write Unknown for the topic.\n\n")
	}

	// Task 4: template.
	fmt.Fprintf(&b, "Task 4: Choose the most suitable template out of the following options: %s. "+
		"If no template is appropriate, use %s.\n\n", strings.Join(g.TemplateNames(), ", "), g.DefaultTemplate)

	// Task 5: summary.
	if in.PriorSummary != "" {
		b.WriteString("Task 5: Update the chat history summary above into a concise two-line summary. " +
			"Prefer new facts over old ones when they conflict and keep old facts that are not contradicted.\n")
	} else {
		b.WriteString("Task 5: Provide a concise two-line summary of any important details of the conversation.\n")
	}
	b.WriteString("The second line must read: User: [name], Phone: [phone], Interested in: [topic] " +
		"using Unknown for anything not known.\n\n")

	// Task 6: reply.
	b.WriteString("Task 6: Write the reply to the user. Use the template guidance to shape your response:\n\n")
	for _, t := range g.Templates {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Guidance)
	}
	b.WriteString("\n")

	b.WriteString("Format your response exactly like this:\n")
	b.WriteString("Name: [Name or Unknown]\n")
	b.WriteString("Phone: [Phone or Unknown]\n")
	b.WriteString("Topic: [Content ID]\n")
	fmt.Fprintf(&b, "Template: [Template or %s]\n", g.DefaultTemplate)
	b.WriteString("Summary: [Two-line summary]\n")
	b.WriteString("Response: [Your actual response to the user]")

	return system, b.String()
}
