// Package tui is a terminal chat client for a running apaise server,
// used for development and manual testing of the safety gate.
package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/apaise/internal/chat"
	"github.com/alexanderramin/apaise/internal/gateway"
	"github.com/alexanderramin/apaise/internal/safety"
)

var (
	styleUser  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleGuide = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleAlert = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the bubbletea model for the chat client.
type Model struct {
	serverURL string
	sessionID string
	client    *http.Client

	input    textinput.Model
	history  []gateway.Message
	lines    []string
	locked   bool
	waiting  bool
	errLine  string
}

// NewModel creates a chat client against serverURL with the given
// session identifier.
func NewModel(serverURL, sessionID string) Model {
	ti := textinput.New()
	ti.Placeholder = "Écris ton message…"
	ti.Focus()
	ti.CharLimit = 500

	return Model{
		serverURL: strings.TrimRight(serverURL, "/"),
		sessionID: sessionID,
		client:    &http.Client{Timeout: 60 * time.Second},
		input:     ti,
		lines: []string{
			styleDim.Render("apaise — séance guidée. Échap ou Ctrl+C pour quitter."),
		},
	}
}

type turnMsg struct {
	resp *chat.TurnResponse
	err  error
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.locked || m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			return m.sendTurn(text)
		}

	case turnMsg:
		m.waiting = false
		if msg.err != nil {
			m.errLine = styleAlert.Render("service indisponible : " + msg.err.Error())
			return m, nil
		}
		m.errLine = ""
		m.history = append(m.history, gateway.Message{
			Role:    gateway.RoleAssistant,
			Content: msg.resp.Message,
		})

		line := styleGuide.Render("guide ") + msg.resp.Message
		if msg.resp.Crisis != safety.CrisisNone {
			line = styleAlert.Render("guide ") + msg.resp.Message
		}
		m.lines = append(m.lines, line)

		if a := msg.resp.ClientAction; a != nil {
			if a.LockInput {
				m.locked = true
				m.input.Blur()
			}
			if a.FocusInput {
				m.input.Focus()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.errLine != "" {
		b.WriteString(m.errLine)
		b.WriteString("\n")
	}

	switch {
	case m.locked:
		b.WriteString(styleDim.Render("Saisie désactivée. Échap pour quitter."))
	case m.waiting:
		b.WriteString(styleDim.Render("…"))
	default:
		b.WriteString(styleUser.Render("toi ") + m.input.View())
	}
	return b.String()
}

func (m Model) sendTurn(text string) (tea.Model, tea.Cmd) {
	m.history = append(m.history, gateway.Message{Role: gateway.RoleUser, Content: text})
	m.lines = append(m.lines, styleUser.Render("toi ")+text)
	m.waiting = true

	req := chat.TurnRequest{
		SessionID: m.sessionID,
		Messages:  append([]gateway.Message(nil), m.history...),
	}
	url := m.serverURL + "/api/turn"
	client := m.client

	return m, func() tea.Msg {
		data, err := json.Marshal(req)
		if err != nil {
			return turnMsg{err: err}
		}
		httpResp, err := client.Post(url, "application/json", bytes.NewReader(data))
		if err != nil {
			return turnMsg{err: err}
		}
		defer httpResp.Body.Close()

		if httpResp.StatusCode != http.StatusOK {
			return turnMsg{err: fmt.Errorf("le serveur a répondu %d", httpResp.StatusCode)}
		}
		var resp chat.TurnResponse
		if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
			return turnMsg{err: err}
		}
		return turnMsg{resp: &resp}
	}
}
