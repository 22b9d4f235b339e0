// Package extraction asks a language model to pull a product record out of
// rendered page content, and parses the model's answer.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/pagescout/internal/common"
)

// SystemPrompt fixes the output schema the model is asked to produce.
const SystemPrompt = "You are a web page scraper. From the content you are given, extract the product it describes " +
	"as a JSON object with exactly the keys name, price and description. Use null for any value you cannot find. " +
	"Answer with the JSON object inside a ```json fenced code block and nothing else."

// userPrefix precedes the rendered content in the user message.
const userPrefix = "Analyze the following HTML content:\n\n"

// Sampling parameters sent with every request.
const (
	Temperature      = 1.0
	TopP             = 1.0
	FrequencyPenalty = 0.0
	PresencePenalty  = 0.0
	MaxTokens        = 2048
)

const maxResponseBytes = 8 << 20

// Extractor turns rendered content into the model's raw text answer.
type Extractor interface {
	Extract(ctx context.Context, content string) (string, error)
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model            string        `json:"model"`
	Messages         []ChatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
	MaxTokens        int           `json:"max_tokens"`
}

type Choice struct {
	Index        int          `json:"index"`
	Message      *ChatMessage `json:"message,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type ErrorResponse struct {
	Error *APIError `json:"error"`
}

type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewRequest builds the fixed completion request for content.
func (c *Client) NewRequest(content string) *ChatCompletionRequest {
	return &ChatCompletionRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: userPrefix + content},
		},
		Temperature:      Temperature,
		TopP:             TopP,
		FrequencyPenalty: FrequencyPenalty,
		PresencePenalty:  PresencePenalty,
		MaxTokens:        MaxTokens,
	}
}

// Extract returns the first choice's text with surrounding whitespace
// removed. Every failure is reported as common.ErrInference.
func (c *Client) Extract(ctx context.Context, content string) (string, error) {
	body, err := json.Marshal(c.NewRequest(content))
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %w", common.ErrInference, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", common.ErrInference, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: send request: %w", common.ErrInference, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", common.ErrInference, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return "", fmt.Errorf("%w: api error [%d]: %s (type: %s)", common.ErrInference, resp.StatusCode, errResp.Error.Message, errResp.Error.Type)
		}
		return "", fmt.Errorf("%w: api error [%d]: %s", common.ErrInference, resp.StatusCode, Preview(string(respBody)))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %w", common.ErrInference, err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message == nil {
		return "", fmt.Errorf("%w: response has no choices", common.ErrInference)
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
