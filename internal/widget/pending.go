package widget

import (
	"context"

	"github.com/expertsoft/softchat/internal/model/chat"
)

// Pending tracks one submitted message until its reply is rendered.
type Pending struct {
	ID string

	placeholder string
	done        chan struct{}
	result      chat.Message
	err         error
}

func newPending(id, placeholder string) *Pending {
	return &Pending{
		ID:          id,
		placeholder: placeholder,
		done:        make(chan struct{}),
	}
}

func (p *Pending) resolve(msg chat.Message, err error) {
	p.result = msg
	p.err = err
	close(p.done)
}

// Placeholder returns the ID of the typing placeholder for this submission.
func (p *Pending) Placeholder() string { return p.placeholder }

// Done is closed once the resolution message has been rendered.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait returns the rendered resolution message, or ctx's error if ctx ends first.
func (p *Pending) Wait(ctx context.Context) (chat.Message, error) {
	select {
	case <-p.done:
		return p.result, nil
	case <-ctx.Done():
		return chat.Message{}, ctx.Err()
	}
}

// Err returns the transport failure of a resolved submission, if any.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}
