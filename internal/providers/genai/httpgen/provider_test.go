package httpgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "search-bot/internal/common/errors"
	"search-bot/internal/common/logger"
)

func createTestConfig(baseURL string) *Config {
	return &Config{
		GenAIBaseURL: baseURL,
		APIKey:       "test-key",
		Timeout:      2 * time.Second,
		Temperature:  0.4,
	}
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "explain this result", req.Prompt)
		assert.Equal(t, 120, req.MaxTokens)
		assert.InDelta(t, 0.4, req.Temperature, 0.0001)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "It explains token buckets."}`))
	}))
	defer server.Close()

	p := New(createTestConfig(server.URL), logger.NewTestLogger(t))
	text, err := p.Generate(context.Background(), "explain this result", 120)

	require.NoError(t, err)
	assert.Equal(t, "It explains token buckets.", text)
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"bad json", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := New(createTestConfig(server.URL), logger.NewNoOpLogger()).Generate(context.Background(), "p", 400)

			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeGenerationFailed, apperrors.CodeOf(err))
			assert.EqualValues(t, 1, calls.Load())
		})
	}
}

func TestGenerate_EmptyTextIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text": ""}`))
	}))
	defer server.Close()

	text, err := New(createTestConfig(server.URL), logger.NewNoOpLogger()).Generate(context.Background(), "p", 120)

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestGenerate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := New(createTestConfig(server.URL), logger.NewNoOpLogger()).Generate(ctx, "p", 120)
	assert.Error(t, err)
}
