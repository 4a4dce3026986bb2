// Package llm adapts OpenAI-compatible chat completion APIs (OpenAI, Groq) to
// the eino chat model interface.
package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkg/errors"
)

// Defaults for an OpenAI-compatible provider.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama3-8b-8192"
	DefaultTimeout = 60 * time.Second
)

// OpenAIConfig configures an OpenAIChatModel.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// OpenAIChatModel implements model.BaseChatModel over the chat completions API.
type OpenAIChatModel struct {
	client openai.Client
	cfg    OpenAIConfig
}

var _ model.BaseChatModel = (*OpenAIChatModel)(nil)

// NewOpenAIChatModel validates cfg and builds the client.
func NewOpenAIChatModel(cfg OpenAIConfig) (*OpenAIChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai-compatible api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
	)
	return &OpenAIChatModel{client: client, cfg: cfg}, nil
}

// Generate sends one chat completion request.
func (m *OpenAIChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	params, err := m.buildParams(input, opts...)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	return &schema.Message{
		Role:    schema.Assistant,
		Content: choice.Message.Content,
		ResponseMeta: &schema.ResponseMeta{
			FinishReason: string(choice.FinishReason),
			Usage: &schema.TokenUsage{
				PromptTokens:     int(resp.Usage.PromptTokens),
				CompletionTokens: int(resp.Usage.CompletionTokens),
				TotalTokens:      int(resp.Usage.TotalTokens),
			},
		},
	}, nil
}

// Stream answers with a single chunk holding the complete reply.
func (m *OpenAIChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *OpenAIChatModel) buildParams(input []*schema.Message, opts ...model.Option) (openai.ChatCompletionNewParams, error) {
	if len(input) == 0 {
		return openai.ChatCompletionNewParams{}, errors.New("messages are required")
	}

	defaults := &model.Options{Model: &m.cfg.Model}
	if m.cfg.Temperature != nil {
		t := float32(*m.cfg.Temperature)
		defaults.Temperature = &t
	}
	if m.cfg.TopP != nil {
		p := float32(*m.cfg.TopP)
		defaults.TopP = &p
	}
	if m.cfg.MaxTokens != nil {
		n := *m.cfg.MaxTokens
		defaults.MaxTokens = &n
	}
	options := model.GetCommonOptions(defaults, opts...)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(input))
	for _, msg := range input {
		param, err := toMessageParam(msg)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		messages = append(messages, param)
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(*options.Model),
		Messages: messages,
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(float64(*options.Temperature))
	}
	if options.TopP != nil {
		params.TopP = openai.Float(float64(*options.TopP))
	}
	if options.MaxTokens != nil {
		params.MaxTokens = openai.Int(int64(*options.MaxTokens))
	}
	return params, nil
}

func toMessageParam(msg *schema.Message) (openai.ChatCompletionMessageParamUnion, error) {
	switch msg.Role {
	case schema.System:
		return openai.SystemMessage(msg.Content), nil
	case schema.User:
		return openai.UserMessage(msg.Content), nil
	case schema.Assistant:
		return openai.AssistantMessage(msg.Content), nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, errors.Errorf("unsupported role: %s", msg.Role)
	}
}
