package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/expertsoft/softchat/internal/model/knowledge"
	"github.com/expertsoft/softchat/internal/service/retrieval"
)

// NoMatchReply is returned when no knowledge base intent is close enough.
const NoMatchReply = "Sorry, I couldn't find any relevant information."

var (
	ErrEmptyMessage  = errors.New("message is required")
	ErrAIUnavailable = errors.New("language model is not configured")
)

// Retriever finds the intents related to a question.
type Retriever interface {
	TopIntents(ctx context.Context, query string, k int, threshold float64) ([]string, error)
}

// Answerer produces the final reply from retrieved context.
type Answerer interface {
	Answer(ctx context.Context, query, contextText string) (string, error)
}

// Config tunes retrieval.
type Config struct {
	TopK      int
	Threshold float64
}

// Service answers widget messages from the knowledge base.
type Service struct {
	store     knowledge.Store
	retriever Retriever
	answerer  Answerer
	cfg       Config
}

// NewService wires the chat pipeline. answerer may be nil, in which case
// questions that match an intent fail with ErrAIUnavailable.
func NewService(store knowledge.Store, retriever Retriever, answerer Answerer, cfg Config) *Service {
	if cfg.TopK <= 0 {
		cfg.TopK = retrieval.DefaultTopK
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = retrieval.DefaultThreshold
	}
	return &Service{
		store:     store,
		retriever: retriever,
		answerer:  answerer,
		cfg:       cfg,
	}
}

// Reply answers one user message.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	intents, err := s.retriever.TopIntents(ctx, message, s.cfg.TopK, s.cfg.Threshold)
	if err != nil {
		return "", fmt.Errorf("search intents: %w", err)
	}
	if len(intents) == 0 {
		log.Debug().Msg("no intent matched")
		return NoMatchReply, nil
	}

	if s.answerer == nil {
		return "", ErrAIUnavailable
	}

	log.Debug().Strs("intents", intents).Msg("matched intents")
	return s.answerer.Answer(ctx, message, s.BuildContext(intents))
}

// BuildContext renders the entries of intents, in knowledge base order, as
// "Intent: X\nResponse: Y" blocks separated by a blank line.
func (s *Service) BuildContext(intents []string) string {
	wanted := make(map[string]struct{}, len(intents))
	for _, intent := range intents {
		wanted[intent] = struct{}{}
	}

	var parts []string
	for _, entry := range s.store.List() {
		if _, ok := wanted[entry.Intent]; !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("Intent: %s\nResponse: %s", entry.Intent, entry.Response))
	}
	return strings.Join(parts, "\n\n")
}
