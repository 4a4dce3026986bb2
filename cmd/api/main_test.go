package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expertsoft/softchat/internal/config"
)

func TestLoadKnowledgeDefaultsToSeed(t *testing.T) {
	store, err := loadKnowledge(config.KnowledgeConfig{})
	require.NoError(t, err)

	_, ok := store.FindByIntent("greeting")
	assert.True(t, ok)
}

func TestLoadKnowledgeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"intent":"faq","examples":["q"],"response":"a"}]`), 0o600))

	store, err := loadKnowledge(config.KnowledgeConfig{Path: path})
	require.NoError(t, err)
	assert.Len(t, store.List(), 1)
}

func TestRunServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
