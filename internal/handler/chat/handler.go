package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/expertsoft/softchat/internal/model/chat"
	chatService "github.com/expertsoft/softchat/internal/service/chat"
	"github.com/expertsoft/softchat/pkg/utils"
)

// Error messages returned by the chat endpoint.
const (
	MsgInvalidBody = "invalid request body"
	MsgNoInput     = "No input provided."
	MsgRateLimited = "too many requests"
)

// Replier answers one chat message.
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc Replier
	limiter *rate.Limiter
}

// Option 配置处理器
type Option func(*Handler)

// WithRateLimit caps POST /chat at perSecond requests with the given burst.
// perSecond <= 0 leaves the endpoint unlimited.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(h *Handler) {
		if perSecond <= 0 {
			h.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// New 创建聊天处理器
func New(chatSvc Replier, opts ...Option) *Handler {
	h := &Handler{chatSvc: chatSvc}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// handleChat 回答一条用户消息
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow() {
		utils.RespondError(w, http.StatusTooManyRequests, MsgRateLimited)
		return
	}

	var payload chat.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, MsgNoInput)
		return
	}

	reply, err := h.chatSvc.Reply(r.Context(), payload.Message)
	if err != nil {
		if errors.Is(err, chatService.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, MsgNoInput)
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("chat reply failed")
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondReply(w, reply)
}
