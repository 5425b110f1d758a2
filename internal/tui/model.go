// Package tui provides the Bubble Tea consultant chat interface for BrandSnap.
// model.go implements the chat model: a scrolling transcript, a single-line
// input, and an inline preview of the generated brand.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/insajin/brandsnap/internal/brand"
	"github.com/insajin/brandsnap/internal/branding"
	"github.com/insajin/brandsnap/internal/consultant"
)

// ConsultSession is the consultant the chat talks to.
type ConsultSession interface {
	Start(idea string) consultant.Reply
	Chat(ctx context.Context, message string) (consultant.Reply, error)
	SynthesizePrompt() string
	Reset()
}

// BrandGenerator produces a brand record from a synthesized prompt.
type BrandGenerator interface {
	Generate(ctx context.Context, idea string) (*brand.Record, error)
}

// VoiceSession speaks consultant replies and transcribes recorded input.
type VoiceSession interface {
	Speak(ctx context.Context, text string) error
	Listen(ctx context.Context) (string, error)
	StopPlayback()
}

// chatLine is a single rendered transcript line.
type chatLine struct {
	speaker string // "consultant", "you", "error"
	text    string
}

// replyMsg carries a consultant reply back into the update loop.
type replyMsg struct {
	reply consultant.Reply
	err   error
}

// brandMsg carries a generated brand back into the update loop.
type brandMsg struct {
	rec *brand.Record
	err error
}

// spokenMsg reports the outcome of speaking a reply aloud.
type spokenMsg struct {
	err error
}

// heardMsg carries a transcribed recording back into the update loop.
type heardMsg struct {
	text string
	err  error
}

// Model is the Bubble Tea model for the consultant chat.
type Model struct {
	cons  ConsultSession
	gen   BrandGenerator
	voice VoiceSession // nil when voice mode is off

	lines     []chatLine
	input     string
	waiting   bool
	listening bool
	ready     bool // consultant signaled readyToGenerate
	result    *brand.Record

	width    int
	height   int
	quitting bool
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithVoiceSession enables voice mode: replies are spoken aloud and ctrl+r
// records a turn and transcribes it into the input line.
func WithVoiceSession(v VoiceSession) ModelOption {
	return func(m *Model) {
		m.voice = v
	}
}

// NewModel creates a chat model and seeds the consultant greeting.
func NewModel(cons ConsultSession, gen BrandGenerator, idea string, opts ...ModelOption) Model {
	m := Model{cons: cons, gen: gen}
	for _, opt := range opts {
		opt(&m)
	}
	reply := cons.Start(idea)
	m.lines = append(m.lines, chatLine{speaker: "consultant", text: reply.Message})
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.lines = append(m.lines, chatLine{speaker: "error", text: msg.err.Error()})
			return m, nil
		}
		m.lines = append(m.lines, chatLine{speaker: "consultant", text: msg.reply.Message})
		m.ready = msg.reply.ReadyToGenerate
		if m.voice != nil {
			return m, m.speakCmd(msg.reply.Message)
		}
		return m, nil

	case spokenMsg:
		if msg.err != nil {
			m.lines = append(m.lines, chatLine{speaker: "error", text: msg.err.Error()})
		}
		return m, nil

	case heardMsg:
		m.listening = false
		if msg.err != nil {
			m.lines = append(m.lines, chatLine{speaker: "error", text: msg.err.Error()})
			return m, nil
		}
		// The transcript lands in the input line so the user can edit before sending.
		m.input = strings.TrimSpace(msg.text)
		return m, nil

	case brandMsg:
		m.waiting = false
		if msg.err != nil {
			m.lines = append(m.lines, chatLine{speaker: "error", text: msg.err.Error()})
			return m, nil
		}
		m.result = msg.rec
		m.lines = append(m.lines, chatLine{
			speaker: "consultant",
			text:    fmt.Sprintf("Here is your brand: %s — %s", msg.rec.BrandName, msg.rec.Tagline),
		})
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		if m.voice != nil {
			m.voice.StopPlayback()
		}
		return m, tea.Quit

	case tea.KeyCtrlR:
		if m.voice == nil || m.waiting || m.listening {
			return m, nil
		}
		m.listening = true
		return m, m.listenCmd()

	case tea.KeyEnter:
		if m.waiting {
			return m, nil
		}
		return m.submit()

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.input += " "
		return m, nil

	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil
	}

	return m, nil
}

// submit handles an entered line: slash commands or a chat message.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input)
	m.input = ""
	if text == "" {
		return m, nil
	}

	switch text {
	case "/quit":
		m.quitting = true
		return m, tea.Quit

	case "/reset":
		m.cons.Reset()
		m.lines = nil
		m.result = nil
		m.ready = false
		reply := m.cons.Start("")
		m.lines = append(m.lines, chatLine{speaker: "consultant", text: reply.Message})
		return m, nil

	case "/generate":
		m.waiting = true
		m.lines = append(m.lines, chatLine{speaker: "you", text: text})
		return m, m.generateCmd()
	}

	m.lines = append(m.lines, chatLine{speaker: "you", text: text})
	m.waiting = true
	return m, m.chatCmd(text)
}

// chatCmd sends a chat turn to the consultant off the update loop.
func (m Model) chatCmd(text string) tea.Cmd {
	cons := m.cons
	return func() tea.Msg {
		reply, err := cons.Chat(context.Background(), text)
		return replyMsg{reply: reply, err: err}
	}
}

// speakCmd speaks a reply aloud off the update loop.
func (m Model) speakCmd(text string) tea.Cmd {
	voice := m.voice
	return func() tea.Msg {
		return spokenMsg{err: voice.Speak(context.Background(), text)}
	}
}

// listenCmd records a turn and transcribes it off the update loop.
func (m Model) listenCmd() tea.Cmd {
	voice := m.voice
	return func() tea.Msg {
		text, err := voice.Listen(context.Background())
		return heardMsg{text: text, err: err}
	}
}

// generateCmd synthesizes a prompt from the conversation and generates.
func (m Model) generateCmd() tea.Cmd {
	cons := m.cons
	gen := m.gen
	return func() tea.Msg {
		prompt := cons.SynthesizePrompt()
		if prompt == "" {
			return brandMsg{err: fmt.Errorf("not enough conversation to generate from")}
		}
		rec, err := gen.Generate(context.Background(), prompt)
		return brandMsg{rec: rec, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return branding.AppName + " consultant closed.\n"
	}

	w := m.width
	if w == 0 {
		w = 80
	}
	contentWidth := w - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections := []string{
		headerStyle.Width(contentWidth + 2).Render(branding.CLIName + " — Consultant"),
		m.renderTranscript(contentWidth),
	}

	if m.result != nil {
		sections = append(sections, m.renderBrand(contentWidth))
	}

	sections = append(sections,
		inputStyle.Width(contentWidth).Render("> "+m.input),
		m.renderFooter(contentWidth),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTranscript renders the visible tail of the conversation.
func (m Model) renderTranscript(width int) string {
	maxVisible := 12
	start := 0
	if len(m.lines) > maxVisible {
		start = len(m.lines) - maxVisible
	}

	var rows []string
	for _, line := range m.lines[start:] {
		switch line.speaker {
		case "you":
			rows = append(rows, userLabel.Render("You:")+" "+messageStyle.Render(line.text))
		case "error":
			rows = append(rows, errorStyle.Render("Error:")+" "+messageStyle.Render(line.text))
		default:
			rows = append(rows, consultantLabel.Render("Consultant:")+" "+messageStyle.Render(line.text))
		}
	}

	if m.waiting {
		rows = append(rows, pendingStyle.Render("thinking..."))
	}
	if m.listening {
		rows = append(rows, pendingStyle.Render("listening..."))
	}
	if m.ready && m.result == nil && !m.waiting {
		rows = append(rows, pendingStyle.Render("Ready to generate — type /generate"))
	}
	if len(rows) == 0 {
		rows = append(rows, helpStyle.Render("Start the conversation below."))
	}

	return transcriptStyle.Width(width).Render(strings.Join(rows, "\n"))
}

// renderBrand renders the generated brand preview with palette swatches.
func (m Model) renderBrand(width int) string {
	rec := m.result

	var swatches []string
	for _, hex := range rec.Palette.Colors {
		swatches = append(swatches, Swatch(hex)+" "+brandValueStyle.Render(hex))
	}

	method := "Algorithmic"
	if rec.GeneratedWithAI {
		method = "AI-Powered"
	}

	lines := []string{
		brandTitleStyle.Render(rec.BrandName),
		brandFieldStyle.Render("Tagline:") + " " + brandValueStyle.Render(rec.Tagline),
		brandFieldStyle.Render("Industry:") + " " + brandValueStyle.Render(rec.Industry),
		brandFieldStyle.Render("Vibe:") + " " + brandValueStyle.Render(rec.Vibe),
		brandFieldStyle.Render("Palette:") + " " + brandValueStyle.Render(rec.Palette.Name),
		strings.Join(swatches, "  "),
		brandFieldStyle.Render("Method:") + " " + brandValueStyle.Render(method),
	}

	return transcriptStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderFooter renders the keyboard shortcut help bar.
func (m Model) renderFooter(width int) string {
	type helpEntry struct {
		key  string
		desc string
	}
	keys := []helpEntry{
		{"enter", "send"},
		{"/generate", "build brand"},
		{"/reset", "restart"},
		{"/quit", "exit"},
	}
	if m.voice != nil {
		keys = append(keys, helpEntry{"ctrl+r", "record"})
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, helpKeyStyle.Render(k.key)+" "+helpStyle.Render(k.desc))
	}
	help := strings.Join(parts, helpStyle.Render("  |  "))
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(help)
}
