// Package tui hosts the chat widget in a terminal with bubbletea.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/expertsoft/softchat/internal/widget"
)

const (
	inputHeight  = 3
	headerHeight = 1
	footerHeight = 1
)

// readyMsg plays the role of the page load event.
type readyMsg struct{}

// applyMsg carries a controller completion onto the update loop.
type applyMsg struct{ fn func() }

// Model is the bubbletea model of the chat widget.
type Model struct {
	ctx        context.Context
	ctrl       *widget.Controller
	transcript *transcript
	input      textarea.Model
	viewport   viewport.Model
	styles     Styles
	title      string

	loading  bool
	width    int
	height   int
	quitting bool

	// send delivers messages to the running program; nil applies
	// completions immediately.
	send func(tea.Msg)
}

// New creates the terminal widget. ctx bounds every request it sends.
func New(ctx context.Context, replier widget.Replier, title string, opts ...widget.Option) (*Model, error) {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	m := &Model{
		ctx:        ctx,
		transcript: &transcript{},
		input:      ta,
		viewport:   viewport.New(80, 20),
		styles:     DefaultStyles(),
		title:      title,
		loading:    true,
	}

	opts = append([]widget.Option{widget.WithDispatcher(m.dispatch)}, opts...)
	ctrl, err := widget.New(widget.View{
		Transcript: m.transcript,
		Input:      inputAdapter{m: m},
		Loading:    loadingAdapter{m: m},
	}, replier, opts...)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	return m, nil
}

// Controller returns the widget controller driving this model.
func (m *Model) Controller() *widget.Controller { return m.ctrl }

// Attach routes completions through p. It must be called before p.Run.
func (m *Model) Attach(p *tea.Program) { m.send = p.Send }

func (m *Model) dispatch(fn func()) {
	if m.send == nil {
		fn()
		return
	}
	m.send(applyMsg{fn: fn})
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, func() tea.Msg { return readyMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readyMsg:
		m.ctrl.Initialize()
		m.refresh()
		return m, nil

	case applyMsg:
		msg.fn()
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if isExitCommand(m.input.Value()) {
				m.quitting = true
				return m, tea.Quit
			}
			m.ctrl.HandleKey(m.ctx, widget.KeyEvent{Key: widget.KeyEnter})
			m.refresh()
			return m, nil
		case "alt+enter", "ctrl+j":
			m.ctrl.HandleKey(m.ctx, widget.KeyEvent{Key: widget.KeyEnter, LineBreak: true})
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	if m.loading {
		b.WriteString(m.styles.Loading.Render("Loading..."))
		return b.String()
	}
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter: send • alt+enter: new line • pgup/pgdown: scroll • esc: quit"))
	return b.String()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.input.SetWidth(width)
	m.viewport.Width = width
	m.viewport.Height = max(1, height-inputHeight-headerHeight-footerHeight-2)
	m.refresh()
}

// refresh re-renders the transcript into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	if m.transcript.follow {
		m.viewport.GotoBottom()
		m.transcript.follow = false
	}
}

func (m *Model) renderTranscript() string {
	width := m.viewport.Width
	lines := make([]string, 0, len(m.transcript.messages))
	for _, msg := range m.transcript.messages {
		label := m.styles.label(msg.StyleClass).Render(string(msg.Sender) + ":")
		body := m.styles.body(msg.StyleClass).Render(msg.Text)
		line := label + " " + body
		if width > 0 {
			line = lipgloss.NewStyle().Width(width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func isExitCommand(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "exit", "quit":
		return true
	}
	return false
}

// Run starts the terminal widget and blocks until the user quits.
func Run(ctx context.Context, replier widget.Replier, title string, opts ...widget.Option) error {
	m, err := New(ctx, replier, title, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.Attach(p)
	_, err = p.Run()
	return err
}
