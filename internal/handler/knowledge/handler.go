package knowledge

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/expertsoft/softchat/internal/model/knowledge"
	"github.com/expertsoft/softchat/pkg/utils"
)

// Handler 知识库的HTTP处理器
type Handler struct {
	store knowledge.Store
}

// New 创建知识库处理器
func New(store knowledge.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// RegisterRoutes 注册知识库相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/intents", h.handleListIntents)
	r.Get("/intents/{intent}", h.handleGetIntent)
}

// handleListIntents 列出所有意图
func (h *Handler) handleListIntents(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}

// handleGetIntent 返回单个意图
func (h *Handler) handleGetIntent(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.store.FindByIntent(chi.URLParam(r, "intent"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "intent not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, entry)
}
