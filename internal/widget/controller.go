package widget

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/expertsoft/softchat/internal/model/chat"
)

// Controller binds the input of a chat view to /api/chat requests and renders
// the results into its transcript.
type Controller struct {
	view     View
	replier  Replier
	dispatch Dispatcher
	logger   zerolog.Logger

	singleFlight bool

	mu       sync.Mutex
	inFlight int
	wg       sync.WaitGroup
}

// Option customizes a Controller.
type Option func(*Controller)

// WithDispatcher routes completions through d instead of running them on the
// goroutine that received the reply.
func WithDispatcher(d Dispatcher) Option {
	return func(c *Controller) {
		if d != nil {
			c.dispatch = d
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSingleFlight makes Submit a no-op while an earlier submission is still
// awaiting its reply.
func WithSingleFlight() Option {
	return func(c *Controller) {
		c.singleFlight = true
	}
}

// New constructs a controller over view. Transcript and Input are required.
func New(view View, replier Replier, opts ...Option) (*Controller, error) {
	if view.Transcript == nil || view.Input == nil {
		return nil, fmt.Errorf("widget view requires a transcript and an input")
	}
	if replier == nil {
		return nil, fmt.Errorf("widget requires a replier")
	}

	c := &Controller{
		view:     view,
		replier:  replier,
		dispatch: inline,
		logger:   log.With().Str("component", "widget").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Initialize hides the loading overlay and focuses the input.
func (c *Controller) Initialize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view.Loading != nil {
		c.view.Loading.Hide()
	}
	c.view.Input.Focus()
}

// HandleKey reacts to a key press on the input. Enter submits the form, Enter
// with the line-break modifier inserts a line break. It reports whether the
// event was consumed.
func (c *Controller) HandleKey(ctx context.Context, ev KeyEvent) bool {
	if ev.Key != KeyEnter {
		return false
	}
	if ev.LineBreak {
		c.mu.Lock()
		c.view.Input.InsertLineBreak()
		c.mu.Unlock()
		return true
	}
	c.SubmitForm(ctx)
	return true
}

// SubmitForm submits the current input value.
func (c *Controller) SubmitForm(ctx context.Context) *Pending {
	c.mu.Lock()
	value := c.view.Input.Value()
	c.mu.Unlock()
	return c.Submit(ctx, value)
}

// Submit renders text as a user message, shows the typing placeholder and
// sends the request in the background. It returns nil when nothing was sent.
func (c *Controller) Submit(ctx context.Context, text string) *Pending {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.singleFlight && c.inFlight > 0 {
		c.mu.Unlock()
		c.logger.Debug().Msg("submission ignored while a reply is pending")
		return nil
	}
	c.inFlight++
	c.render(chat.User, text, chat.StyleUser)
	c.view.Input.Clear()
	typing := c.render(chat.Bot, chat.TypingText, chat.StyleTyping)
	c.mu.Unlock()

	p := newPending(uuid.NewString(), typing.ID)
	c.logger.Debug().Str("request_id", p.ID).Int("length", len(text)).Msg("submitting message")

	c.wg.Add(1)
	go c.await(ctx, p, text)
	return p
}

// RenderMessage appends a message to the transcript, scrolls to it and
// returns it. The returned ID addresses the rendered node.
func (c *Controller) RenderMessage(sender chat.Sender, text, styleClass string) chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.render(sender, text, styleClass)
}

// Wait blocks until every submission made so far has been resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// InFlight returns the number of submissions awaiting their reply.
func (c *Controller) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

func (c *Controller) render(sender chat.Sender, text, styleClass string) chat.Message {
	msg := chat.Message{
		ID:         uuid.NewString(),
		Sender:     sender,
		Text:       text,
		StyleClass: styleClass,
	}
	c.view.Transcript.Append(msg)
	c.view.Transcript.ScrollToEnd()
	return msg
}

func (c *Controller) await(ctx context.Context, p *Pending, text string) {
	reply, err := c.send(ctx, text)

	c.dispatch(func() {
		defer c.wg.Done()

		c.mu.Lock()
		c.view.Transcript.Remove(p.placeholder)
		var msg chat.Message
		if err != nil {
			c.logger.Warn().Err(err).Str("request_id", p.ID).Msg("chat request failed")
			msg = c.render(chat.Bot, chat.ConnectFailedText, chat.StyleBot)
		} else {
			msg = c.render(chat.Bot, reply.Text(), chat.StyleBot)
		}
		c.inFlight--
		c.mu.Unlock()

		p.resolve(msg, err)
	})
}

// send shields the controller from a panicking replier; any failure during
// the request counts as a transport failure.
func (c *Controller) send(ctx context.Context, text string) (reply chat.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("chat request panicked: %v", r)
		}
	}()
	return c.replier.Send(ctx, text)
}
