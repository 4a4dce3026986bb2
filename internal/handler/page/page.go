// Package page serves the chat widget page and its static assets.
package page

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/expertsoft/softchat/internal/model/chat"
	"github.com/expertsoft/softchat/internal/model/knowledge"
	"github.com/expertsoft/softchat/internal/widget/htmlview"
	"github.com/expertsoft/softchat/pkg/utils"
)

// DefaultGreeting is shown when the knowledge base has no greeting intent.
const DefaultGreeting = "Hello! How can I help you today?"

//go:embed static
var assets embed.FS

var indexTemplate = template.Must(template.ParseFS(assets, "static/index.html"))

type pageData struct {
	Title       string
	ContainerID string
	FormID      string
	InputID     string
	LoadingID   string
	Transcript  template.HTML
}

// Handler 渲染聊天页面
type Handler struct {
	greeting string
	static   http.Handler
}

// New 创建页面处理器。欢迎语取自知识库中的 greeting 意图。
func New(store knowledge.Store) *Handler {
	greeting := DefaultGreeting
	if store != nil {
		if entry, ok := store.FindByIntent("greeting"); ok && entry.Response != "" {
			greeting = entry.Response
		}
	}

	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return &Handler{
		greeting: greeting,
		static:   http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
	}
}

// RegisterRoutes 注册页面路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/static/*", h.static.ServeHTTP)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	body, err := h.render()
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("render chat page")
		utils.RespondError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) render() ([]byte, error) {
	transcript := htmlview.NewTranscript()
	transcript.Append(chat.Message{
		Sender:     chat.Bot,
		Text:       h.greeting,
		StyleClass: chat.StyleBot,
	})
	markup, err := transcript.HTML()
	if err != nil {
		return nil, errors.Wrap(err, "render transcript")
	}

	var buf bytes.Buffer
	err = indexTemplate.Execute(&buf, pageData{
		Title:       "Expert Soft Assistant",
		ContainerID: htmlview.ContainerID,
		FormID:      htmlview.FormID,
		InputID:     htmlview.InputID,
		LoadingID:   htmlview.LoadingID,
		Transcript:  markup,
	})
	if err != nil {
		return nil, errors.Wrap(err, "execute page template")
	}
	return buf.Bytes(), nil
}
