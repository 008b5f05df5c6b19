package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/quocvuong92/remote-hub/internal/config"
	"github.com/quocvuong92/remote-hub/internal/constants"
	"github.com/quocvuong92/remote-hub/internal/logging"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
}

// ChatRequest represents the Chat Completions API request
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice represents a response choice
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// ChatResponse represents the API response
type ChatResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// GetContent extracts the content from the response
func (r *ChatResponse) GetContent() string {
	if len(r.Choices) > 0 {
		return r.Choices[0].Message.Content
	}
	return ""
}

// ErrorResponse represents an OpenAI-style API error body
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// APIError represents an error with status code
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrEmptyResponse is returned when the service answers without any content.
var ErrEmptyResponse = errors.New("description service returned no content")

// DescriptionPrompt builds the user prompt sent for one file.
func DescriptionPrompt(fileName, fileContent string) string {
	return "You are an AI assistant that helps users understand their files.\n" +
		"Generate a concise description for the following file. " +
		"The description should be no more than 2 sentences.\n\n" +
		"Filename: " + fileName + "\n" +
		"Content: " + fileContent + "\n"
}

// ChatClient talks to an OpenAI-compatible chat completions endpoint.
type ChatClient struct {
	httpClient *http.Client
	config     *config.Config
	httpLogger *logging.HTTPLogger
	retry      RetryPolicy
}

var _ Describer = (*ChatClient)(nil)

// NewChatClient creates a new chat completions client.
// With cfg.Verbose every request and response is logged with secrets redacted.
func NewChatClient(cfg *config.Config) *ChatClient {
	transport := http.DefaultTransport

	var httpLogger *logging.HTTPLogger
	if cfg.Verbose {
		logger := logging.New(logging.Options{
			Level:  logging.LevelDebug,
			Format: logging.FormatJSON,
		})
		httpLogger = logging.NewHTTPLogger(logger)
		transport = logging.NewLoggingRoundTripper(http.DefaultTransport, httpLogger, true)
	}

	return &ChatClient{
		httpClient: &http.Client{
			Timeout:   constants.DefaultAPITimeout,
			Transport: transport,
		},
		config:     cfg,
		httpLogger: httpLogger,
		retry:      DefaultRetryPolicy,
	}
}

// Describe asks the model for a short description of a file.
func (c *ChatClient) Describe(ctx context.Context, fileName, fileContent string) (string, error) {
	resp, err := c.Query(ctx, []Message{
		{Role: "user", Content: DescriptionPrompt(fileName, fileContent)},
	})
	if err != nil {
		return "", err
	}

	logging.Debug("description usage", logging.Fields{
		"file":          fileName,
		"input_tokens":  resp.Usage.PromptTokens,
		"output_tokens": resp.Usage.CompletionTokens,
	})

	content := strings.TrimSpace(resp.GetContent())
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// Query sends messages to the chat completions endpoint (non-streaming).
func (c *ChatClient) Query(ctx context.Context, messages []Message) (*ChatResponse, error) {
	reqBody := ChatRequest{
		Model:    c.config.Model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return c.retry.run(ctx, func() (*ChatResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GetChatURL(), bytes.NewReader(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			var errResp ErrorResponse
			errMsg := fmt.Sprintf("status code %d", resp.StatusCode)
			if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
				errMsg = errResp.Error.Message
			}
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("description API error: %s", errMsg),
			}
		}

		var chatResp ChatResponse
		if err := json.Unmarshal(body, &chatResp); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}

		return &chatResp, nil
	})
}
