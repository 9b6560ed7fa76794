package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ragchat/internal/assembler"
	"ragchat/internal/domain"
	"ragchat/internal/llm"
)

// RAGPort is the TUI-facing subset of the RAG service.
type RAGPort interface {
	Retrieve(ctx context.Context, query, model string, k int) ([]domain.RankedMatch, error)
}

// Options selects the models and the generation call shape for a chat
// session.
type Options struct {
	EmbedModel string
	ChatModel  string
	Style      string // "chat" or "completion"
	TopK       int
}

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	service   RAGPort
	generator domain.Generator
	opts      Options

	input      textinput.Model
	viewport   viewport.Model
	transcript []string
	status     string
	summary    string
	ready      bool
	waiting    bool
}

// answerMsg carries one completed chat turn back into the update loop.
type answerMsg struct {
	question string
	reply    string
	matches  []domain.RankedMatch
	err      error
}

// New creates a new chat TUI model. The summary line reports what was
// ingested at startup.
func New(service RAGPort, generator domain.Generator, opts Options, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your documents and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:   service,
		generator: generator,
		opts:      opts,
		input:     ti,
		viewport:  vp,
		summary:   summary,
		status:    "Ready.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.input.SetValue("")
				m.waiting = true
				m.status = "Thinking..."
				m.transcript = append(m.transcript, youStyle.Render("You: ")+q)
				m.viewport.SetContent(m.renderTranscript())
				m.viewport.GotoBottom()
				return m, m.ask(q)
			}
		}
	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.transcript = append(m.transcript, errStyle.Render("(no answer: "+msg.err.Error()+")"))
		} else {
			m.status = describeMatches(msg.matches)
			m.transcript = append(m.transcript, botStyle.Render("Assistant: ")+msg.reply)
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs one retrieval-grounded chat turn off the update loop.
func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		matches, err := m.service.Retrieve(ctx, question, m.opts.EmbedModel, m.opts.TopK)
		if err != nil {
			return answerMsg{question: question, err: err}
		}
		contextText := assembler.Assemble(matches)

		var reply string
		if m.opts.Style == "completion" {
			reply, err = m.generator.Complete(ctx, m.opts.ChatModel, llm.BuildUserPrompt(contextText, question))
		} else {
			reply, err = m.generator.Chat(ctx, m.opts.ChatModel, llm.BuildMessages(contextText, question))
		}
		if err != nil {
			return answerMsg{question: question, err: err}
		}
		return answerMsg{question: question, reply: reply, matches: matches}
	}
}

// View renders the TUI layout and transcript.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Document Chat")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + summary + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	return strings.Join(m.transcript, "\n\n")
}

// describeMatches summarizes the grounding sources for the status line.
func describeMatches(matches []domain.RankedMatch) string {
	if len(matches) == 0 {
		return "Answered without document context."
	}
	var parts []string
	seen := make(map[string]bool)
	for _, r := range matches {
		if seen[r.Fragment.Source] {
			continue
		}
		seen[r.Fragment.Source] = true
		parts = append(parts, fmt.Sprintf("%s (%.3f)", r.Fragment.Source, r.Score))
	}
	return "Context from: " + strings.Join(parts, ", ")
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	youStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
