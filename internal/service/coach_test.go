package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportconnect/sportconnect-api/internal/config"
)

func newCoachTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *CoachService) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc := NewCoachService(&config.CoachConfig{
		APIURL:  srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: time.Second,
	})

	return srv, svc
}

func TestCoachAsk(t *testing.T) {
	_, svc := newCoachTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req coachChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Try a 10 minute warm-up first."}},
			},
		})
	})

	answer, err := svc.Ask(context.Background(), "how should I warm up?")

	require.NoError(t, err)
	assert.Equal(t, "Try a 10 minute warm-up first.", answer)
}

func TestCoachAsk_UpstreamError(t *testing.T) {
	_, svc := newCoachTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := svc.Ask(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrCoachUnavailable)
}

func TestCoachAsk_EmptyChoices(t *testing.T) {
	_, svc := newCoachTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := svc.Ask(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrCoachUnavailable)
}

func TestCoachAsk_Timeout(t *testing.T) {
	_, svc := newCoachTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
	})
	svc.client.Timeout = 10 * time.Millisecond

	_, err := svc.Ask(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrCoachUnavailable)
}
