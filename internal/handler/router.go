package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/expertsoft/softchat/internal/handler/chat"
	knowledgeHandler "github.com/expertsoft/softchat/internal/handler/knowledge"
	"github.com/expertsoft/softchat/internal/handler/page"
	middlewarePkg "github.com/expertsoft/softchat/internal/middleware"
	"github.com/expertsoft/softchat/internal/model/knowledge"
	"github.com/expertsoft/softchat/pkg/utils"
)

// RouterConfig 路由可选项
type RouterConfig struct {
	RateLimit float64
	RateBurst int
}

// NewRouter wires HTTP routes to core services.
func NewRouter(store knowledge.Store, chatSvc chat.Replier, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	// Create handlers
	pageHandler := page.New(store)
	chatHandler := chat.New(chatSvc, chat.WithRateLimit(cfg.RateLimit, cfg.RateBurst))
	intentHandler := knowledgeHandler.New(store)

	pageHandler.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)

		// Knowledge base inspection
		intentHandler.RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
