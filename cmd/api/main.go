package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/expertsoft/softchat/internal/config"
	"github.com/expertsoft/softchat/internal/handler"
	"github.com/expertsoft/softchat/internal/logging"
	"github.com/expertsoft/softchat/internal/model/knowledge"
	"github.com/expertsoft/softchat/internal/service/ai"
	"github.com/expertsoft/softchat/internal/service/chat"
	"github.com/expertsoft/softchat/internal/service/retrieval"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Setup(cfg.Log.Level)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file, continuing with system environment variables only")
	}

	store, err := loadKnowledge(cfg.Knowledge)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Knowledge.Path).Msg("failed to load knowledge base")
	}

	index, err := retrieval.Build(ctx, retrieval.NewLexicalEmbedder(0), store.List())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build retrieval index")
	}
	log.Info().Int("entries", len(store.List())).Int("examples", index.Len()).Msg("knowledge base indexed")

	// Initialize AI service
	var answerer chat.Answerer
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize AI service, continuing without answer generation")
		} else {
			answerer = aiService
			log.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("AI service initialized")
		}
	} else {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("AI credentials not configured, matched questions will fail")
	}

	chatService := chat.NewService(store, index, answerer, chat.Config{
		TopK:      cfg.Knowledge.TopK,
		Threshold: cfg.Knowledge.Threshold,
	})

	router := handler.NewRouter(store, chatService, handler.RouterConfig{
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
	})

	startServer(ctx, cfg.Server, router)
}

func loadKnowledge(cfg config.KnowledgeConfig) (knowledge.Store, error) {
	if cfg.Path == "" {
		return knowledge.NewMemoryStore(knowledge.Seed()), nil
	}
	return knowledge.LoadFile(cfg.Path)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("softchat backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
