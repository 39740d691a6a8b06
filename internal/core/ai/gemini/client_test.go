package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-app-api/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})
}

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody request

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "Hello from Gemini"}]}}]}`))
	})

	text, err := client.GenerateContent(context.Background(), "say hello", nil)
	require.NoError(t, err)

	assert.Equal(t, "Hello from Gemini", text)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "say hello", gotBody.Contents[0].Parts[0].Text)
	assert.Nil(t, gotBody.GenerationConfig)
}

func TestGenerateContentSendsGenerationConfig(t *testing.T) {
	var gotBody map[string]json.RawMessage

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "[]"}]}}]}`))
	})

	_, err := client.GenerateContent(context.Background(), "plan", &GenerationConfig{
		Temperature:      0.8,
		TopP:             1,
		TopK:             1,
		MaxOutputTokens:  8192,
		ResponseMIMEType: "application/json",
	})
	require.NoError(t, err)

	require.Contains(t, gotBody, "generationConfig")
	assert.JSONEq(t,
		`{"temperature": 0.8, "topP": 1, "topK": 1, "maxOutputTokens": 8192, "responseMimeType": "application/json"}`,
		string(gotBody["generationConfig"]))
}

func TestGenerateContentErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	})

	_, err := client.GenerateContent(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestGenerateContentNoCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.GenerateContent(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestHasKey(t *testing.T) {
	withKey := NewClient(&config.GeminiConfig{APIKey: "k", Timeout: time.Second})
	assert.True(t, withKey.HasKey())

	withoutKey := NewClient(&config.GeminiConfig{Timeout: time.Second})
	assert.False(t, withoutKey.HasKey())
}
