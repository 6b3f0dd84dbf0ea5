// Package suggestions calls a generative-AI endpoint to produce free-form
// suggestions for a note. The response text is returned verbatim; no
// structure is imposed on it.
package suggestions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

var ErrNoCandidates = errors.New("upstream returned no candidates")

// Client calls the Gemini generateContent API for note suggestions.
type Client struct {
	baseURL string
	apiKey  string
	model   string
}

func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// Suggest builds a prompt from the note fields, performs one synchronous
// call to the upstream model, and returns the first candidate's text.
// There is no retry and no timeout beyond the transport default.
func (c *Client) Suggest(ctx context.Context, title, content string, tags []string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: buildPrompt(title, content, tags)}},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal suggestion payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create suggestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("suggestion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode suggestion response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoCandidates
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

func buildPrompt(title, content string, tags []string) string {
	return fmt.Sprintf(`
You are an AI assistant helping users with note-taking.
Given this note:

Title: %s
Content: %s
Tags: %s

Provide:
1. 3 related note ideas
2. 3 suggested tags
3. A short summary
`, title, content, strings.Join(tags, ", "))
}

// Gemini generateContent API payload types.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}
