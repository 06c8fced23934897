package chatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/skinsight/pkg/errors"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewClient("  ", "", time.Second)
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestCreateChatCompletion(t *testing.T) {
	t.Parallel()

	var got ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  {\"ok\":true} "}}],"usage":{"prompt_tokens":12,"completion_tokens":5,"total_tokens":17}}`))
	}))
	defer srv.Close()

	client, err := NewClient("secret", srv.URL+"/", time.Second)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:          "gpt-4o-mini",
		Messages:       []Message{{Role: "user", Content: "hi"}},
		ResponseFormat: JSONObject,
	})
	require.NoError(t, err)
	require.Equal(t, `{"ok":true}`, resp.Content())
	require.Equal(t, 17, resp.Usage.TotalTokens)
	require.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Equal(t, "gpt-4o-mini", got.Model)
}

func TestCreateChatCompletionStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient("secret", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}

func TestUnavailableReturnsConfigError(t *testing.T) {
	t.Parallel()

	_, err := Unavailable{}.CreateChatCompletion(context.Background(), ChatCompletionRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeConfig))
	require.ErrorIs(t, err, ErrMissingAPIKey)
}
