package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/expertsoft/softchat/internal/model/chat"
)

// transcript keeps the rendered messages of the terminal view. It is only
// touched from the bubbletea update loop.
type transcript struct {
	messages []chat.Message
	follow   bool
}

func (t *transcript) Append(msg chat.Message) {
	msg.Text = sanitize(msg.Text)
	t.messages = append(t.messages, msg)
}

func (t *transcript) Remove(id string) bool {
	for i, msg := range t.messages {
		if msg.ID == id {
			t.messages = append(t.messages[:i], t.messages[i+1:]...)
			return true
		}
	}
	return false
}

func (t *transcript) ScrollToEnd() { t.follow = true }

// sanitize drops terminal escape sequences and control characters so replies
// cannot restyle or move the cursor of the host terminal.
func sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// inputAdapter exposes the textarea of a Model as the widget input.
type inputAdapter struct{ m *Model }

func (a inputAdapter) Value() string    { return a.m.input.Value() }
func (a inputAdapter) Clear()           { a.m.input.Reset() }
func (a inputAdapter) Focus()           { a.m.input.Focus() }
func (a inputAdapter) InsertLineBreak() { a.m.input.InsertString("\n") }

// loadingAdapter hides the startup banner.
type loadingAdapter struct{ m *Model }

func (a loadingAdapter) Hide() { a.m.loading = false }
