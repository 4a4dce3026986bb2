package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/expertsoft/softchat/internal/llm"
)

// Supported AI providers.
const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Knowledge KnowledgeConfig
	AI        AIConfig
	Client    ClientConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	knowledge, err := loadKnowledgeConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Log:       LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "info")},
		Knowledge: knowledge,
		AI:        ai,
		Client:    ClientConfig{Endpoint: getEnvOrDefault("CHAT_ENDPOINT", "http://localhost:8080/api/chat")},
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
	// RateLimit is the sustained /api/chat requests per second; 0 disables limiting.
	RateLimit float64
	RateBurst int
}

// LogConfig 描述日志配置。
type LogConfig struct {
	Level string
}

// KnowledgeConfig 描述知识库与检索参数。
type KnowledgeConfig struct {
	Path      string
	TopK      int
	Threshold float64
}

// ClientConfig 描述终端客户端配置。
type ClientConfig struct {
	Endpoint string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	rate, err := parseOptionalFloatEnv("CHAT_RATE_LIMIT")
	if err != nil {
		return ServerConfig{}, err
	}
	burst, err := parseOptionalIntEnv("CHAT_RATE_BURST")
	if err != nil {
		return ServerConfig{}, err
	}

	cfg := ServerConfig{RateLimit: 5, RateBurst: 10}
	if rate != nil {
		if *rate < 0 {
			return ServerConfig{}, fmt.Errorf("invalid CHAT_RATE_LIMIT value %v: must not be negative", *rate)
		}
		cfg.RateLimit = *rate
	}
	if burst != nil {
		if *burst < 1 {
			cfg.RateBurst = 1
		} else {
			cfg.RateBurst = *burst
		}
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		cfg.Addr = port
		return cfg, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	cfg.Addr = ":" + port
	return cfg, nil
}

func loadKnowledgeConfig() (KnowledgeConfig, error) {
	topK := 5
	if override, err := parseOptionalIntEnv("RETRIEVAL_TOP_K"); err != nil {
		return KnowledgeConfig{}, err
	} else if override != nil {
		if *override < 1 {
			topK = 1
		} else {
			topK = *override
		}
	}

	threshold := 0.5
	if override, err := parseOptionalFloatEnv("RETRIEVAL_THRESHOLD"); err != nil {
		return KnowledgeConfig{}, err
	} else if override != nil {
		threshold = *override
	}

	return KnowledgeConfig{
		Path:      strings.TrimSpace(os.Getenv("KNOWLEDGE_BASE_PATH")),
		TopK:      topK,
		Threshold: threshold,
	}, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider    string
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	Timeout     time.Duration
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderArk:
		return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
	case ProviderOpenAI:
		return c.APIKey != ""
	default:
		return false
	}
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%s credentials or model are missing", c.Provider)
	}

	switch c.Provider {
	case ProviderOpenAI:
		return llm.NewOpenAIChatModel(llm.OpenAIConfig{
			APIKey:      c.APIKey,
			BaseURL:     c.BaseURL,
			Model:       c.Model,
			Temperature: c.Temperature,
			TopP:        c.TopP,
			MaxTokens:   c.MaxTokens,
			Timeout:     c.Timeout,
		})
	case ProviderArk:
		return c.newArkChatModel(ctx)
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", c.Provider)
	}
}

func (c AIConfig) newArkChatModel(ctx context.Context) (model.BaseChatModel, error) {
	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	var timeout *time.Duration
	if c.Timeout > 0 {
		val := c.Timeout
		timeout = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		Timeout:     timeout,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("AI_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("AI_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("AI_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeoutSeconds := 60
	if override, err := parseOptionalIntEnv("AI_TIMEOUT_SECONDS"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override > 0 {
		timeoutSeconds = *override
	}

	cfg := AIConfig{
		Provider:    strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderOpenAI)),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
		Timeout:     time.Duration(timeoutSeconds) * time.Second,
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.APIKey = firstNonEmptyEnv("GROQ_API_KEY", "OPENAI_API_KEY")
		cfg.BaseURL = getEnvOrDefault("OPENAI_BASE_URL", llm.DefaultBaseURL)
		cfg.Model = getEnvOrDefault("AI_MODEL", llm.DefaultModel)
	case ProviderArk:
		cfg.APIKey = strings.TrimSpace(os.Getenv("ARK_API_KEY"))
		cfg.AccessKey = strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY"))
		cfg.SecretKey = strings.TrimSpace(os.Getenv("ARK_SECRET_KEY"))
		cfg.Model = strings.TrimSpace(os.Getenv("AI_MODEL"))
		cfg.BaseURL = getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3")
		cfg.Region = getEnvOrDefault("ARK_REGION", "cn-beijing")
	default:
		return AIConfig{}, fmt.Errorf("invalid AI_PROVIDER value %q: want %s or %s", cfg.Provider, ProviderOpenAI, ProviderArk)
	}

	return cfg, nil
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
