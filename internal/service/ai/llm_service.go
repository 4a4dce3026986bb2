package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/expertsoft/softchat/internal/analysis/detail"
	"github.com/expertsoft/softchat/internal/config"
)

const guardPrompt = "You must only answer based on the provided context. If nothing is relevant, respond with: 'Sorry, I couldn't find any relevant information.'"

const answerPrompt = `You are a helpful and professional assistant for Expert Soft Solution.

Use the context provided below to answer the user's question. Your responses should be complete, slightly elaborated, and helpful, typically 2 to 4 sentences. Do not be overly brief. Avoid generic language. Do not mention that you're an AI.

If the user asks for more detail or explanation, you may expand further.

Context:
{context}

User Question:
{query}

Your Response:{detail}`

const detailSuffix = "\nThe user wants more explanation. Give a more detailed response."

// Service answers questions from retrieved knowledge base context.
type Service struct {
	chatModel model.BaseChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the chat model described by cfg and wraps it.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel)
}

// NewServiceWithModel compiles the answer chain around an existing model.
func NewServiceWithModel(ctx context.Context, chatModel model.BaseChatModel) (*Service, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(guardPrompt),
		schema.UserMessage(answerPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile answer chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		chain:     runnable,
	}, nil
}

// Answer generates a reply to query grounded on contextText.
func (s *Service) Answer(ctx context.Context, query, contextText string) (string, error) {
	input := buildChainInput(query, contextText)

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run answer chain: %w", err)
	}

	answer := strings.TrimSpace(response.Content)
	log.Debug().
		Int("length", len(answer)).
		Bool("detailed", input["detail"] != "").
		Msg("generated answer")
	return answer, nil
}

// GetChatModel 返回底层的聊天模型
func (s *Service) GetChatModel() model.BaseChatModel {
	return s.chatModel
}

func buildChainInput(query, contextText string) map[string]any {
	suffix := ""
	if detail.NeedsDetail(query) {
		suffix = detailSuffix
	}
	return map[string]any{
		"context": contextText,
		"query":   query,
		"detail":  suffix,
	}
}
