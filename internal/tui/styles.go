package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/expertsoft/softchat/internal/model/chat"
)

// Styles maps message style classes to terminal styles.
type Styles struct {
	Title   lipgloss.Style
	User    lipgloss.Style
	Bot     lipgloss.Style
	Typing  lipgloss.Style
	Text    lipgloss.Style
	Help    lipgloss.Style
	Loading lipgloss.Style
}

// DefaultStyles returns the built-in color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27")).Padding(0, 1),
		User:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Bot:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Typing:  lipgloss.NewStyle().Italic(true).Faint(true),
		Text:    lipgloss.NewStyle(),
		Help:    lipgloss.NewStyle().Faint(true),
		Loading: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
	}
}

func (s Styles) label(styleClass string) lipgloss.Style {
	switch styleClass {
	case chat.StyleUser:
		return s.User
	case chat.StyleTyping:
		return s.Typing
	default:
		return s.Bot
	}
}

func (s Styles) body(styleClass string) lipgloss.Style {
	if styleClass == chat.StyleTyping {
		return s.Typing
	}
	return s.Text
}
