package widget

import (
	"context"

	"github.com/expertsoft/softchat/internal/model/chat"
)

// Transcript is the scrollable message container.
type Transcript interface {
	Append(msg chat.Message)
	Remove(id string) bool
	ScrollToEnd()
}

// Input is the text field the user types into.
type Input interface {
	Value() string
	Clear()
	Focus()
	InsertLineBreak()
}

// LoadingIndicator is the optional overlay shown until the page is ready.
type LoadingIndicator interface {
	Hide()
}

// View bundles the elements a Controller drives. Loading may be nil.
type View struct {
	Transcript Transcript
	Input      Input
	Loading    LoadingIndicator
}

// Replier performs the single outbound request of a submission.
type Replier interface {
	Send(ctx context.Context, text string) (chat.Reply, error)
}

// Dispatcher runs fn on the host's UI loop.
type Dispatcher func(fn func())

func inline(fn func()) { fn() }

// Key identifies the keys the controller reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
)

// KeyEvent is a key press on the input. LineBreak is set when the line-break
// modifier (Shift in browsers, Alt in terminals) is held.
type KeyEvent struct {
	Key       Key
	LineBreak bool
}
