package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/frontdesk/internal/contract"
	"github.com/alexanderramin/frontdesk/internal/domain"
)

// FormatLeadList renders the sessions dashboard table.
func FormatLeadList(leads []domain.Lead) string {
	if len(leads) == 0 {
		return Dim("No sessions yet.") + "\n"
	}

	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{
			Dim(Truncate(l.SessionID, 14)),
			Known(l.Name),
			Known(l.Phone),
			Known(Truncate(l.Interest, 24)),
			CompletenessPill(l.Name, l.Phone),
			Dim(HumanTimestamp(l.UpdatedAt)),
		})
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Sessions (%d)", len(leads))))
	b.WriteString("\n\n")
	b.WriteString(RenderTable([]string{"SESSION", "NAME", "NUMBER", "INTEREST", "CONTACT", "LAST SEEN"}, rows))
	return b.String()
}

// FormatLeadDetail renders one session with its conversation.
func FormatLeadDetail(l domain.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Name:    "), Known(l.Name))
	fmt.Fprintf(&b, "%s %s\n", Dim("Number:  "), Known(l.Phone))
	fmt.Fprintf(&b, "%s %s\n", Dim("Interest:"), Known(l.Interest))
	fmt.Fprintf(&b, "%s %s\n", Dim("Updated: "), HumanTimestamp(l.UpdatedAt))
	if l.Summary != "" {
		b.WriteString("\n" + Bold("Summary") + "\n" + l.Summary + "\n")
	}

	turns := domain.SplitLog(l.Log)
	if l.Log != "" && len(turns) > 0 {
		b.WriteString("\n" + Bold("Conversation") + "\n")
		for _, turn := range turns {
			user, bot, ok := strings.Cut(turn, domain.LogSeparator+"Bot: ")
			user = strings.TrimPrefix(user, "User: ")
			b.WriteString(StyleBlue.Render("› ") + user + "\n")
			if ok {
				b.WriteString(StyleGreen.Render("‹ ") + bot + "\n")
			}
		}
	}
	return RenderBox("Session "+l.SessionID, strings.TrimRight(b.String(), "\n"))
}

// FormatContentList renders the topic corpus.
func FormatContentList(entries []domain.ContentEntry) string {
	if len(entries) == 0 {
		return Dim("No content. Import some with `frontdesk content import <file>`.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			StylePurple.Render(strconv.Itoa(e.ID)),
			Bold(e.Keyword),
			Truncate(e.Content, 60),
		})
	}
	return RenderTable([]string{"ID", "KEYWORD", "CONTENT"}, rows)
}

// FormatReply renders one assistant turn for the terminal.
func FormatReply(resp *contract.QueryResponse) string {
	style := StyleGreen
	if resp.Degraded {
		style = StyleYellow
	}
	return style.Render("‹ ") + resp.Response
}
