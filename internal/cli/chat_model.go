package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/frontdesk/internal/cli/formatter"
	"github.com/alexanderramin/frontdesk/internal/contract"
	"github.com/alexanderramin/frontdesk/internal/domain"
	"github.com/alexanderramin/frontdesk/internal/service"
)

// replyMsg carries the result of one Submit back into the model.
type replyMsg struct {
	resp *contract.QueryResponse
	err  error
}

// chatModel is a terminal stand-in for the website chat widget. The whole
// conversation shares one session id.
type chatModel struct {
	ctx       context.Context
	frontDesk service.FrontDeskService
	sessionID string

	input   textinput.Model
	spinner spinner.Model
	waiting bool

	messages []string
	name     string
	phone    string
}

func newChatModel(ctx context.Context, frontDesk service.FrontDeskService, sessionID string) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Type a message"
	ti.CharLimit = 1000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return &chatModel{
		ctx:       ctx,
		frontDesk: frontDesk,
		sessionID: sessionID,
		input:     ti,
		spinner:   sp,
		messages:  []string{formatter.Dim("Session " + sessionID + ". /quit to leave.")},
	}
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			switch strings.ToLower(text) {
			case "/quit", "/exit", "/q":
				return m, tea.Quit
			}
			m.messages = append(m.messages, formatter.Dim("You: ")+text)
			m.waiting = true
			return m, tea.Batch(m.spinner.Tick, m.submit(text))
		}

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.messages = append(m.messages, formatter.StyleRed.Render("! ")+msg.err.Error())
			return m, nil
		}
		m.name = domain.StrOr(msg.resp.Name, "")
		m.phone = domain.StrOr(msg.resp.Phone, "")
		m.messages = append(m.messages, formatter.FormatReply(msg.resp))
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) submit(text string) tea.Cmd {
	req := contract.QueryRequest{Query: text, SessionID: m.sessionID}
	return func() tea.Msg {
		resp, err := m.frontDesk.Submit(m.ctx, req)
		return replyMsg{resp: resp, err: err}
	}
}

func (m *chatModel) View() string {
	var b strings.Builder
	for _, line := range m.messages {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.waiting {
		b.WriteString(m.spinner.View())
		b.WriteString(formatter.Dim(" typing..."))
		b.WriteString("\n")
	}

	b.WriteString(formatter.CompletenessPill(m.name, m.phone))
	b.WriteString(" ")
	b.WriteString(formatter.StylePurple.Render("you") + formatter.Dim("> "))
	b.WriteString(m.input.View())
	return b.String()
}
