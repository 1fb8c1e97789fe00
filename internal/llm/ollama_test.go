package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOllamaClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(ollamaResponse{Response: "  Acme Corp \n"})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3", 5*time.Second, zap.NewNop())

	out, err := client.Complete(context.Background(), "Extract the vendor")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", out)
}

func TestOllamaClient_Complete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3", 5*time.Second, zap.NewNop())

	_, err := client.Complete(context.Background(), "anything")
	assert.Error(t, err)
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3", time.Second, zap.NewNop())
	breaker := NewBreaker(client, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := breaker.Complete(context.Background(), "ping")
		assert.Error(t, err)
	}

	_, err := breaker.Complete(context.Background(), "ping")
	assert.ErrorIs(t, err, ErrUnavailable)
}
