// Package optimizer asks an OpenAI-compatible chat-completions endpoint for
// SQL tuning suggestions. The feature is optional: without an API key, or
// when the service misbehaves, the result reports unavailability or an error
// message instead of failing the caller.
package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/adrenaline09/SqlTranslator/internal/dialect"
)

const (
	// DefaultEndpoint is the OpenAI chat-completions URL.
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefaultModel is the model requested when none is configured.
	DefaultModel = "gpt-4o"

	defaultTimeout = 60 * time.Second
)

// Suggestion is one optimization recommendation.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Example     string `json:"example,omitempty"`
}

// Result reports availability plus any suggestions returned.
type Result struct {
	Available   bool         `json:"available"`
	Message     string       `json:"message"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Client talks to one chat-completions endpoint.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

// Option adjusts a Client.
type Option func(*Client)

// WithEndpoint points the client at a different completions URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithModel selects the model named in requests.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a client. An empty API key is allowed; Suggest then
// reports the feature unavailable.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		model:    DefaultModel,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether the client has an API key to work with.
func (c *Client) Available() bool { return c.apiKey != "" }

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
	MaxTokens      int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Suggest requests tuning suggestions for one statement. It never returns a
// hard error: transport, auth, and payload problems all come back as a
// Result with an explanatory message.
func (c *Client) Suggest(ctx context.Context, sql string, d dialect.Dialect) *Result {
	if !c.Available() {
		return &Result{
			Available: false,
			Message: "optimization requires an API key; set SQLTRANSLATOR_API_KEY " +
				"or OPENAI_API_KEY, or pass --api-key",
		}
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are an expert SQL optimization assistant."},
			{Role: "user", Content: buildPrompt(sql, d)},
		},
		ResponseFormat: &respFormat{Type: "json_object"},
		MaxTokens:      2000,
	})
	if err != nil {
		return &Result{Available: true, Message: fmt.Sprintf("building request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &Result{Available: true, Message: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Result{Available: true, Message: fmt.Sprintf("optimization service unreachable: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Result{
			Available: true,
			Message:   fmt.Sprintf("optimization service returned %s: %s", resp.Status, bytes.TrimSpace(snippet)),
		}
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return &Result{Available: true, Message: fmt.Sprintf("decoding response: %v", err)}
	}
	if len(cr.Choices) == 0 {
		return &Result{Available: true, Message: "optimization service returned no choices"}
	}

	suggestions, err := parseSuggestions(cr.Choices[0].Message.Content)
	if err != nil {
		return &Result{Available: true, Message: fmt.Sprintf("parsing suggestions: %v", err)}
	}
	return &Result{
		Available:   true,
		Message:     "optimization suggestions are available",
		Suggestions: suggestions,
	}
}

func buildPrompt(sql string, d dialect.Dialect) string {
	return fmt.Sprintf(`You are an expert SQL tuning consultant specializing in the %s SQL dialect.
Analyze the following SQL query and suggest optimizations:

`+"```sql\n%s\n```"+`

Provide a detailed analysis focusing on:
1. Indexing opportunities
2. Query structure improvements
3. Performance bottlenecks
4. Rewrite suggestions if applicable

Format your response as a JSON array of objects, each with these fields:
- title: a short title for the suggestion
- description: a detailed explanation of the optimization
- impact: "High", "Medium", or "Low" based on expected improvement
- example: an example of the optimized code (if applicable)`, d, sql)
}

// parseSuggestions accepts either a bare JSON array or an object wrapping it
// under a "suggestions" key, since models return both shapes.
func parseSuggestions(content string) ([]Suggestion, error) {
	var list []Suggestion
	if err := json.Unmarshal([]byte(content), &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Suggestions, nil
}
