package chat

// Sender identifies who authored a transcript entry.
type Sender string

const (
	User Sender = "You"
	Bot  Sender = "Bot"
)

// Presentation tags attached to rendered messages.
const (
	StyleUser   = "user-message"
	StyleBot    = "bot-message"
	StyleTyping = "bot-message typing"
)

// Fixed texts rendered by the widget.
const (
	TypingText        = "Typing..."
	ConnectFailedText = "Failed to connect."
	ErrorPrefix       = "Error: "
)

// Message is a render-only transcript entry. ID is the handle views use to
// locate the rendered node again.
type Message struct {
	ID         string `json:"id"`
	Sender     Sender `json:"sender"`
	Text       string `json:"text"`
	StyleClass string `json:"styleClass"`
}

// IsPlaceholder reports whether the message is the transient typing indicator.
func (m Message) IsPlaceholder() bool {
	return m.StyleClass == StyleTyping
}
