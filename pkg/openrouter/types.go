package openrouter

import (
	"fmt"
	"net/http"
)

// Config holds OpenRouter client configuration
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Referer    string // sent as HTTP-Referer, identifies the calling app
	AppTitle   string // sent as X-Title
	HTTPClient *http.Client
}

// Validate validates the configuration.
// A missing API key is a configuration error and fails here, before any request.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrAPIKeyMissing
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// Request is a chat completion request in the OpenAI wire format.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Response is a chat completion response.
type Response struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice is a single completion candidate.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage tracks token consumption
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ErrorResponse is the error envelope returned by the API.
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Text returns the content of the first choice, or an empty string
// if the response carries no usable choice.
func (r *Response) Text() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

func apiError(status int, body string) error {
	return fmt.Errorf("openrouter: API error %d: %s", status, body)
}
