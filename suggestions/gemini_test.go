package suggestions

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_Success(t *testing.T) {
	var gotPath, gotQuery, gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req geminiRequest
		require.NoError(t, json.Unmarshal(body, &req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		gotPrompt = req.Contents[0].Parts[0].Text

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"three ideas, three tags, a summary"}]}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	text, err := client.Suggest(context.Background(), "Project ideas", "Build a notes app", []string{"ideas", "projects"})
	require.NoError(t, err)

	assert.Equal(t, "three ideas, three tags, a summary", text)
	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
	assert.Equal(t, "key=test-key", gotQuery)
	assert.Contains(t, gotPrompt, "Title: Project ideas")
	assert.Contains(t, gotPrompt, "Content: Build a notes app")
	assert.Contains(t, gotPrompt, "Tags: ideas, projects")
	assert.Contains(t, gotPrompt, "3 related note ideas")
}

func TestSuggest_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	_, err := client.Suggest(context.Background(), "A", "B", nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestSuggest_UpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	_, err := client.Suggest(context.Background(), "A", "B", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestSuggest_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient(server.URL, "test-key", "test-model")
	_, err := client.Suggest(context.Background(), "A", "B", nil)
	assert.Error(t, err)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("", "key", "model")
	assert.Equal(t, defaultBaseURL, client.baseURL)
}
