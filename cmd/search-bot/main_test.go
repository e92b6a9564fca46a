package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-bot/internal/common/logger"
	"search-bot/internal/models"
)

// ==========================
// Commands
// ==========================

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantKind models.QueryKind
		wantCtx  string
	}{
		{"plain", []string{"classify", "best", "pizza", "recipes"}, models.QueryKindPlain, ""},
		{"operator", []string{"classify", "site:github.com", "rate", "limiter"}, models.QueryKindOperator, "restricting results to a specific site"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)
			require.NoError(t, rootCmd.Execute())

			var cls models.Classification
			require.NoError(t, json.Unmarshal(out.Bytes(), &cls))
			assert.Equal(t, tt.wantKind, cls.Kind)
			assert.Equal(t, tt.wantCtx, cls.ContextDescription)
		})
	}
}

func TestQueryCommand_RequiresTarget(t *testing.T) {
	queryChat, queryStdout = "", false
	rootCmd.SetArgs([]string{"query", "golang"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--chat or --stdout")
}

func TestConsoleSender(t *testing.T) {
	var out bytes.Buffer
	s := &consoleSender{out: &out}
	require.NoError(t, s.Send(context.Background(), "stdout", models.MessagePayload{
		Body: "hello", Kind: models.PayloadHeader,
	}))
	assert.Equal(t, "── header ──\nhello\n\n", out.String())
}

// ==========================
// HTTP endpoints
// ==========================

func TestReadyHandler(t *testing.T) {
	ok := readinessCheck{name: "redis", check: func(context.Context) error { return nil }}
	down := readinessCheck{name: "elasticsearch", check: func(context.Context) error { return errors.New("connection refused") }}

	tests := []struct {
		name       string
		checks     []readinessCheck
		wantStatus int
		wantBody   string
	}{
		{"no dependencies", nil, http.StatusOK, `"ready"`},
		{"all healthy", []readinessCheck{ok}, http.StatusOK, `"ready"`},
		{"one failing", []readinessCheck{ok, down}, http.StatusServiceUnavailable, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			readyHandler(tt.checks)(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestMux_RoutesWebhookAndHealth(t *testing.T) {
	hook := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	mux := newMux("/telegram/hook", hook, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/telegram/hook", strings.NewReader("{}")))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRetryWithBackoff(t *testing.T) {
	log := logger.NewTestLogger(t)
	calls := 0
	err := retryWithBackoff(func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, 5, 0, log, "op")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	err = retryWithBackoff(func() error { return errors.New("down") }, 2, 0, log, "op")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op failed after 2 attempts")
}
