package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls an Ark-style chat-completions API for interpretation and
// title generation.
type Client struct {
	baseURL    string
	apiKey     string
	model      string // Deep-thinking model for interpretation.
	titleModel string // Faster model for chunk titles.
	httpClient *http.Client

	Stats *Stats
}

func NewClient(baseURL, apiKey, model, titleModel string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		titleModel: titleModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Minute, // Deep-thinking calls can run long.
		},
		Stats: NewStats(time.Hour),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			// Deep-thinking models surface their reasoning in a separate
			// field alongside the final answer.
			ReasoningContent string `json:"reasoning_content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// chat performs one chat-completions round trip and returns the final content
// and any reasoning the model emitted separately.
func (c *Client) chat(ctx context.Context, model string, messages []chatMessage, temperature float64, maxTokens int) (content, reasoning string, err error) {
	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if c.Stats != nil {
		c.Stats.Record(time.Since(start).Milliseconds())
	}
	if err != nil {
		return "", "", fmt.Errorf("chat api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", "", &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("chat api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", "", fmt.Errorf("chat api error: %s: %s", apiResp.Error.Code, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", "", fmt.Errorf("empty response from chat api")
	}

	msg := apiResp.Choices[0].Message
	return strings.TrimSpace(msg.Content), strings.TrimSpace(msg.ReasoningContent), nil
}

// Generate runs the interpretation model and returns the combined raw text:
// reasoning, when present, is wrapped in <thinking> tags ahead of the final
// content so the recoverer can split it back out.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	content, reasoning, err := c.chat(ctx, c.model,
		[]chatMessage{{Role: "user", Content: prompt}}, 0.3, 16000)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", fmt.Errorf("chat api returned empty content")
	}
	if reasoning != "" {
		return "<thinking>\n" + reasoning + "\n</thinking>\n\n" + content, nil
	}
	return content, nil
}

// Model returns the interpretation model identifier.
func (c *Client) Model() string {
	return c.model
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// RetryableError indicates a transient upstream failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}
