package intelligence

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/frontdesk/internal/domain"
)

// unknownSentinel is the model's way of saying a field is absent.
const unknownSentinel = "Unknown"

// ParsedFields is the typed result of one completion. Nil means absent.
type ParsedFields struct {
	Name           *string
	Phone          *string
	MatchedTopicID *int
	Template       *string
	Summary        string
	ReplyText      *string
}

// ParseOptions carries the candidate sets a completion is checked against.
type ParseOptions struct {
	TopicIDs        map[int]bool
	Templates       *Guidance
	DefaultTemplate string
}

// NewParseOptions builds options from the guidance table and topic corpus.
func NewParseOptions(g *Guidance, topics []domain.ContentEntry) ParseOptions {
	ids := make(map[int]bool, len(topics))
	for _, t := range topics {
		ids[t.ID] = true
	}
	opts := ParseOptions{TopicIDs: ids, Templates: g, DefaultTemplate: DefaultTemplate}
	if g != nil {
		opts.DefaultTemplate = g.DefaultTemplate
	}
	return opts
}

type section int

const (
	secName section = iota
	secPhone
	secTopic
	secTemplate
	secSummary
	secResponse
)

var sectionLabels = []struct {
	label string
	sec   section
}{
	{"Name", secName},
	{"Phone", secPhone},
	{"Topic", secTopic},
	{"Template", secTemplate},
	{"Summary", secSummary},
	{"Response", secResponse},
}

// ParseCompletion splits raw model output into labeled sections and maps
// each to a typed field. A section starts at a line beginning with a label
// and a colon (list markers and bold markers are ignored) and runs to the
// next section start or end of text. Response always runs to the end of
// text, so label-like lines inside the reply stay in the reply. The first
// occurrence of a label wins; a repeated label is kept as text of the
// current section. Text before the first label is dropped. ParseCompletion
// never fails.
func ParseCompletion(raw string, opts ParseOptions) ParsedFields {
	sections := splitSections(raw)

	var out ParsedFields

	if v, ok := sections[secName]; ok {
		out.Name = optionalValue(v)
	}
	if v, ok := sections[secPhone]; ok {
		out.Phone = optionalValue(v)
	}
	if v, ok := sections[secTopic]; ok {
		out.MatchedTopicID = parseTopicID(v, opts.TopicIDs)
	}
	out.Template = resolveTemplate(sections, opts)
	if v, ok := sections[secSummary]; ok {
		out.Summary = strings.TrimSpace(v)
	}
	if v, ok := sections[secResponse]; ok {
		if r := strings.TrimSpace(v); r != "" {
			out.ReplyText = &r
		}
	}
	return out
}

func splitSections(raw string) map[section]string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	found := make(map[section]string, len(sectionLabels))
	bodies := make(map[section]*strings.Builder, len(sectionLabels))

	current := section(-1)
	for _, line := range strings.Split(raw, "\n") {
		if current == secResponse {
			bodies[current].WriteString("\n")
			bodies[current].WriteString(line)
			continue
		}
		if sec, rest, ok := matchLabel(line); ok {
			if _, seen := bodies[sec]; !seen {
				current = sec
				bodies[sec] = &strings.Builder{}
				bodies[sec].WriteString(rest)
				continue
			}
		}
		if current < 0 {
			continue
		}
		bodies[current].WriteString("\n")
		bodies[current].WriteString(line)
	}

	for sec, b := range bodies {
		found[sec] = b.String()
	}
	return found
}

// matchLabel reports whether line opens a section, returning the text after the colon.
func matchLabel(line string) (section, string, bool) {
	s := strings.TrimLeft(line, " \t")
	s = strings.TrimLeft(s, "-*#> \t")
	for _, l := range sectionLabels {
		if !strings.HasPrefix(s, l.label) {
			continue
		}
		after := strings.TrimLeft(s[len(l.label):], "*")
		if !strings.HasPrefix(after, ":") {
			continue
		}
		after = strings.TrimLeft(after[1:], "*")
		return l.sec, after, true
	}
	return 0, "", false
}

// firstLine returns the first non-blank line of v with brackets and quotes removed.
func firstLine(v string) string {
	for _, line := range strings.Split(v, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "[")
		line = strings.TrimSuffix(line, "]")
		line = strings.Trim(line, `"'`)
		return strings.TrimSpace(line)
	}
	return ""
}

func optionalValue(v string) *string {
	s := firstLine(v)
	if s == "" || s == unknownSentinel {
		return nil
	}
	return &s
}

// parseTopicID takes the first integer token of the value, so "2",
// "Content ID: 2", "#2" and "3 (Pricing)" all resolve. The id must be one
// of the offered topics.
func parseTopicID(v string, candidates map[int]bool) *int {
	for _, tok := range strings.Fields(firstLine(v)) {
		id, err := strconv.Atoi(strings.Trim(tok, "#:.,;()[]"))
		if err != nil {
			continue
		}
		if !candidates[id] {
			return nil
		}
		return &id
	}
	return nil
}

func resolveTemplate(sections map[section]string, opts ParseOptions) *string {
	def := opts.DefaultTemplate
	if def == "" {
		def = DefaultTemplate
	}
	v, ok := sections[secTemplate]
	if !ok {
		return &def
	}
	name := firstLine(v)
	switch {
	case name == unknownSentinel:
		return nil
	case name == "":
		return &def
	case opts.Templates == nil:
		return &name
	}
	if canonical, ok := opts.Templates.Resolve(name); ok {
		return &canonical
	}
	return &def
}
