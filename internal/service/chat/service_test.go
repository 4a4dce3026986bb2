package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/expertsoft/softchat/internal/model/knowledge"
	chat "github.com/expertsoft/softchat/internal/service/chat"
	"github.com/expertsoft/softchat/internal/service/retrieval"
)

type stubAnswerer struct {
	query   string
	context string
	err     error
}

func (s *stubAnswerer) Answer(_ context.Context, query, contextText string) (string, error) {
	s.query = query
	s.context = contextText
	if s.err != nil {
		return "", s.err
	}
	return "answer for " + query, nil
}

type stubRetriever struct {
	intents []string
	err     error
}

func (s stubRetriever) TopIntents(context.Context, string, int, float64) ([]string, error) {
	return s.intents, s.err
}

func newStore() *knowledge.MemoryStore {
	return knowledge.NewMemoryStore([]knowledge.Entry{
		{Intent: "greeting", Examples: []string{"hello"}, Response: "Hi!"},
		{Intent: "services", Examples: []string{"what services do you offer"}, Response: "Apps."},
		{Intent: "pricing", Examples: []string{"what are your prices"}, Response: "It depends."},
	})
}

func TestServiceReplyUsesMatchedContext(t *testing.T) {
	answerer := &stubAnswerer{}
	svc := chat.NewService(newStore(), stubRetriever{intents: []string{"pricing", "services"}}, answerer, chat.Config{})

	reply, err := svc.Reply(context.Background(), "tell me about services and prices")
	if err != nil {
		t.Fatalf("Reply err: %v", err)
	}
	if reply != "answer for tell me about services and prices" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	want := "Intent: services\nResponse: Apps.\n\nIntent: pricing\nResponse: It depends."
	if answerer.context != want {
		t.Fatalf("unexpected context:\n%s\nwant:\n%s", answerer.context, want)
	}
}

func TestServiceReplyNoMatch(t *testing.T) {
	answerer := &stubAnswerer{}
	svc := chat.NewService(newStore(), stubRetriever{}, answerer, chat.Config{})

	reply, err := svc.Reply(context.Background(), "quantum physics")
	if err != nil {
		t.Fatalf("Reply err: %v", err)
	}
	if reply != chat.NoMatchReply {
		t.Fatalf("expected fallback reply, got %q", reply)
	}
	if answerer.query != "" {
		t.Fatal("answerer should not be called without matches")
	}
}

func TestServiceReplyEmptyMessage(t *testing.T) {
	svc := chat.NewService(newStore(), stubRetriever{}, &stubAnswerer{}, chat.Config{})

	if _, err := svc.Reply(context.Background(), "   "); !errors.Is(err, chat.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestServiceReplyWithoutAnswerer(t *testing.T) {
	svc := chat.NewService(newStore(), stubRetriever{intents: []string{"greeting"}}, nil, chat.Config{})

	if _, err := svc.Reply(context.Background(), "hello"); !errors.Is(err, chat.ErrAIUnavailable) {
		t.Fatalf("expected ErrAIUnavailable, got %v", err)
	}
}

func TestServiceReplyRetrieverError(t *testing.T) {
	boom := errors.New("embedder down")
	svc := chat.NewService(newStore(), stubRetriever{err: boom}, &stubAnswerer{}, chat.Config{})

	if _, err := svc.Reply(context.Background(), "hello"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped retriever error, got %v", err)
	}
}

func TestServiceReplyWithLexicalIndex(t *testing.T) {
	store := newStore()
	idx, err := retrieval.Build(context.Background(), retrieval.NewLexicalEmbedder(0), store.List())
	if err != nil {
		t.Fatalf("Build err: %v", err)
	}
	answerer := &stubAnswerer{}
	svc := chat.NewService(store, idx, answerer, chat.Config{TopK: 5, Threshold: 0.5})

	if _, err := svc.Reply(context.Background(), "Hello"); err != nil {
		t.Fatalf("Reply err: %v", err)
	}
	if answerer.context != "Intent: greeting\nResponse: Hi!" {
		t.Fatalf("unexpected context: %q", answerer.context)
	}
}
