// Package htmlview renders a chat widget as an HTML node tree. Message text is
// only ever inserted as text nodes, so it is escaped when rendered.
package htmlview

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/expertsoft/softchat/internal/model/chat"
)

// Element ids of the widget page.
const (
	ContainerID = "chat-container"
	FormID      = "chat-form"
	InputID     = "chat-input"
	LoadingID   = "loadingOverlay"
)

// Transcript is the chat container element.
type Transcript struct {
	root      *html.Node
	nodes     map[string]*html.Node
	scrollTop int
}

// NewTranscript creates an empty container.
func NewTranscript() *Transcript {
	return &Transcript{
		root:  element(atom.Div, html.Attribute{Key: "id", Val: ContainerID}),
		nodes: make(map[string]*html.Node),
	}
}

// Append adds a message node:
// <div class="message STYLE" data-id="ID"><strong>SENDER:</strong> TEXT</div>
func (t *Transcript) Append(msg chat.Message) {
	node := element(atom.Div,
		html.Attribute{Key: "class", Val: "message " + msg.StyleClass},
		html.Attribute{Key: "data-id", Val: msg.ID},
	)
	label := element(atom.Strong)
	label.AppendChild(text(string(msg.Sender) + ":"))
	node.AppendChild(label)
	node.AppendChild(text(" " + msg.Text))

	t.root.AppendChild(node)
	if msg.ID != "" {
		t.nodes[msg.ID] = node
	}
}

// Remove detaches the node rendered for id.
func (t *Transcript) Remove(id string) bool {
	node, ok := t.nodes[id]
	if !ok {
		return false
	}
	t.root.RemoveChild(node)
	delete(t.nodes, id)
	return true
}

// ScrollToEnd records that the newest entry is in view.
func (t *Transcript) ScrollToEnd() {
	t.scrollTop = t.Len()
}

// ScrollTop is the number of entries scrolled past, equal to Len after ScrollToEnd.
func (t *Transcript) ScrollTop() int { return t.scrollTop }

// Len returns the number of rendered messages.
func (t *Transcript) Len() int {
	n := 0
	for c := t.root.FirstChild; c != nil; c = c.NextSibling {
		n++
	}
	return n
}

// Texts returns the visible text of each message, without the sender label.
func (t *Transcript) Texts() []string {
	var out []string
	for c := t.root.FirstChild; c != nil; c = c.NextSibling {
		if c.LastChild != nil && c.LastChild.Type == html.TextNode {
			out = append(out, strings.TrimPrefix(c.LastChild.Data, " "))
		}
	}
	return out
}

// Render writes the container markup.
func (t *Transcript) Render(w io.Writer) error {
	return html.Render(w, t.root)
}

// HTML returns the container markup for use in a page template.
func (t *Transcript) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Render(&buf); err != nil {
		return "", err
	}
	// The tree only holds text nodes built by Append, which html.Render escapes.
	return template.HTML(buf.String()), nil
}

// Input is the text field state.
type Input struct {
	value   string
	focused bool
}

func (i *Input) Value() string     { return i.value }
func (i *Input) SetValue(v string) { i.value = v }
func (i *Input) Clear()            { i.value = "" }
func (i *Input) Focus()            { i.focused = true }
func (i *Input) Focused() bool     { return i.focused }
func (i *Input) InsertLineBreak()  { i.value += "\n" }

// Loading is the page loading overlay.
type Loading struct {
	hidden bool
}

func (l *Loading) Hide()        { l.hidden = true }
func (l *Loading) Hidden() bool { return l.hidden }

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}
