package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/frontdesk/internal/contract"
	"github.com/alexanderramin/frontdesk/internal/domain"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONGER"}, [][]string{{"xyz", "1"}, {StyleRed.Render("q"), "22"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[1]))
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3])-1)
	assert.Empty(t, RenderTable(nil, nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel…", Truncate("hello world", 4))
	assert.Equal(t, "a b", Truncate("a\n  b", 10))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"zero", time.Time{}, "--"},
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-30 * time.Hour), "Yesterday"},
		{"older", time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), "Sep 30, 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanTimestampFrom(tt.input, now))
		})
	}
}

func TestFormatLeadList(t *testing.T) {
	assert.Contains(t, FormatLeadList(nil), "No sessions yet.")

	out := FormatLeadList([]domain.Lead{
		{SessionID: "sess_1", Name: "Anita", Phone: "98400", Interest: "Pricing"},
		{SessionID: "sess_2"},
	})
	assert.Contains(t, out, "SESSIONS (2)")
	assert.Contains(t, out, "Anita")
	assert.Contains(t, out, "complete")
	assert.Contains(t, out, "anonymous")
}

func TestFormatLeadDetail_ShowsConversation(t *testing.T) {
	out := FormatLeadDetail(domain.Lead{
		SessionID: "sess_1",
		Name:      "Anita",
		Summary:   "Asked about price.",
		Log:       domain.AppendLog(domain.FormatLogEntry("price?", "500 INR"), domain.FormatLogEntry("thanks", "Welcome")),
	})
	assert.Contains(t, out, "SESSION SESS_1")
	assert.Contains(t, out, "Asked about price.")
	assert.Contains(t, out, "price?")
	assert.Contains(t, out, "500 INR")
	assert.Contains(t, out, "Welcome")
	assert.NotContains(t, out, "User: ")
}

func TestFormatContentList(t *testing.T) {
	assert.Contains(t, FormatContentList(nil), "content import")
	out := FormatContentList([]domain.ContentEntry{{ID: 7, Keyword: "Yoga", Content: "Daily sessions at 6 AM."}})
	assert.Contains(t, out, "Yoga")
	assert.Contains(t, out, "Daily sessions")
}

func TestFormatReply(t *testing.T) {
	assert.Contains(t, FormatReply(&contract.QueryResponse{Response: "Hello!"}), "Hello!")
	assert.Contains(t, FormatReply(&contract.QueryResponse{Response: "Oops", Degraded: true}), "Oops")
}
