package intelligence

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTemplate is used when a guidance file does not name one.
const DefaultTemplate = "General"

//go:embed guidance.yaml
var defaultGuidanceYAML []byte

// BusinessProfile describes the business the assistant answers for.
type BusinessProfile struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	City    string `yaml:"city"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
	Hours   string `yaml:"hours"`
}

// TemplateGuide is one response template and its tone/content instruction.
type TemplateGuide struct {
	Name     string `yaml:"name"`
	Guidance string `yaml:"guidance"`
}

// Guidance is the single table of persona, business facts and response
// templates shared by prompt assembly and reply composition.
type Guidance struct {
	Business        BusinessProfile `yaml:"business"`
	Persona         string          `yaml:"persona"`
	DefaultTemplate string          `yaml:"default_template"`
	Templates       []TemplateGuide `yaml:"templates"`

	byName map[string]int
}

// DefaultGuidance returns the embedded guidance table.
func DefaultGuidance() *Guidance {
	g, err := ParseGuidance(defaultGuidanceYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded guidance is invalid: %v", err))
	}
	return g
}

// LoadGuidance reads a guidance file, or the embedded table when path is empty.
func LoadGuidance(path string) (*Guidance, error) {
	if path == "" {
		return DefaultGuidance(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading guidance file: %w", err)
	}
	g, err := ParseGuidance(data)
	if err != nil {
		return nil, fmt.Errorf("guidance file %s: %w", path, err)
	}
	return g, nil
}

// ParseGuidance decodes and validates a YAML guidance table.
// {{business}}, {{phone}} and the other profile placeholders are expanded.
func ParseGuidance(data []byte) (*Guidance, error) {
	var g Guidance
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decoding guidance: %w", err)
	}
	if g.DefaultTemplate == "" {
		g.DefaultTemplate = DefaultTemplate
	}
	if strings.TrimSpace(g.Business.Name) == "" {
		return nil, fmt.Errorf("business.name is required")
	}

	expand := g.Business.replacer()
	g.Persona = expand.Replace(strings.TrimSpace(g.Persona))

	g.byName = make(map[string]int, len(g.Templates))
	for i := range g.Templates {
		t := &g.Templates[i]
		t.Name = strings.TrimSpace(t.Name)
		t.Guidance = expand.Replace(strings.TrimSpace(t.Guidance))
		if t.Name == "" {
			return nil, fmt.Errorf("template %d has no name", i+1)
		}
		if t.Name == unknownSentinel {
			return nil, fmt.Errorf("template name %q is reserved", unknownSentinel)
		}
		key := strings.ToLower(t.Name)
		if _, dup := g.byName[key]; dup {
			return nil, fmt.Errorf("duplicate template %q", t.Name)
		}
		g.byName[key] = i
	}
	if _, ok := g.byName[strings.ToLower(g.DefaultTemplate)]; !ok {
		return nil, fmt.Errorf("default template %q is not in the template list", g.DefaultTemplate)
	}
	return &g, nil
}

func (b BusinessProfile) replacer() *strings.Replacer {
	return strings.NewReplacer(
		"{{business}}", b.Name,
		"{{kind}}", b.Kind,
		"{{city}}", b.City,
		"{{phone}}", b.Phone,
		"{{address}}", b.Address,
		"{{hours}}", b.Hours,
	)
}

// TemplateNames lists template names in table order.
func (g *Guidance) TemplateNames() []string {
	names := make([]string, len(g.Templates))
	for i, t := range g.Templates {
		names[i] = t.Name
	}
	return names
}

// Resolve returns the canonical spelling of a template name, matching
// case-insensitively.
func (g *Guidance) Resolve(name string) (string, bool) {
	i, ok := g.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", false
	}
	return g.Templates[i].Name, true
}

// GuidanceFor returns the instruction for a template, or "" if unknown.
func (g *Guidance) GuidanceFor(name string) string {
	i, ok := g.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ""
	}
	return g.Templates[i].Guidance
}
