package intelligence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGuidance_Loads(t *testing.T) {
	g := DefaultGuidance()

	assert.Equal(t, "R K Nature Cure Home", g.Business.Name)
	assert.Equal(t, "General", g.DefaultTemplate)
	assert.Contains(t, g.TemplateNames(), "General")
	assert.Contains(t, g.Persona, "R K Nature Cure Home")
	assert.NotContains(t, g.Persona, "{{")
	for _, tpl := range g.Templates {
		assert.NotContains(t, tpl.Guidance, "{{", "template %s", tpl.Name)
	}
}

func TestGuidance_Resolve(t *testing.T) {
	g := DefaultGuidance()

	name, ok := g.Resolve("  location ")
	require.True(t, ok)
	assert.Equal(t, "Location", name)

	_, ok = g.Resolve("Horoscope")
	assert.False(t, ok)

	assert.NotEmpty(t, g.GuidanceFor("Pricing"))
	assert.Empty(t, g.GuidanceFor("Horoscope"))
}

func TestParseGuidance_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing business",
			yaml: "templates:\n  - name: General\n    guidance: g\n",
			want: "business.name is required",
		},
		{
			name: "duplicate template",
			yaml: "business: {name: B}\ntemplates:\n  - name: General\n  - name: general\n",
			want: "duplicate template",
		},
		{
			name: "reserved name",
			yaml: "business: {name: B}\ntemplates:\n  - name: General\n  - name: Unknown\n",
			want: "reserved",
		},
		{
			name: "default not listed",
			yaml: "business: {name: B}\ndefault_template: Other\ntemplates:\n  - name: General\n",
			want: "default template",
		},
		{
			name: "bad yaml",
			yaml: "business: [",
			want: "decoding guidance",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGuidance([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseGuidance_ExpandsPlaceholders(t *testing.T) {
	data := []byte(`business:
  name: Sunrise Clinic
  phone: "555-0100"
persona: You work at {{business}}.
templates:
  - name: General
    guidance: Call {{phone}}.
`)
	g, err := ParseGuidance(data)
	require.NoError(t, err)
	assert.Equal(t, "You work at Sunrise Clinic.", g.Persona)
	assert.Equal(t, "Call 555-0100.", g.GuidanceFor("General"))
	assert.Equal(t, DefaultTemplate, g.DefaultTemplate)
}

func TestLoadGuidance_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guidance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("business: {name: B}\ntemplates:\n  - name: General\n"), 0o644))

	g, err := LoadGuidance(path)
	require.NoError(t, err)
	assert.Equal(t, "B", g.Business.Name)

	g, err = LoadGuidance("")
	require.NoError(t, err)
	assert.Equal(t, "R K Nature Cure Home", g.Business.Name)

	_, err = LoadGuidance(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
