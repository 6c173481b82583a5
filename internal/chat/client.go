package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"foodhub-be/internal/logger"
	"foodhub-be/internal/metrics"

	"go.uber.org/zap"
)

const (
	anthropicVersion = "2023-06-01"
	maxTokens        = 500
	fallbackReply    = "Sorry, I could not generate a response."
	serviceName      = "anthropic"
)

// Completer produces an assistant reply for a system prompt and
// conversation.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}

type AnthropicClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewAnthropicClient(apiKey, baseURL, model string, m *metrics.Metrics) *AnthropicClient {
	if apiKey == "" {
		logger.L().Warn("Anthropic API key is empty, chat is disabled")
	}
	return &AnthropicClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		metrics: m,
	}
}

func (c *AnthropicClient) Configured() bool {
	return c.apiKey != ""
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *AnthropicClient) Complete(ctx context.Context, system string, messages []Message) (reply string, err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "client"),
		zap.String("service", serviceName),
		zap.Int("messages", len(messages)),
	)

	timer := metrics.StartTimer()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		c.metrics.ObserveExternal(serviceName, outcome, timer.Duration())
	}()

	jsonBody, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("anthropic request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("anthropic returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		if resp.StatusCode == http.StatusUnauthorized {
			return "", ErrInvalidAPIKey
		}
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var res messagesResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding anthropic response", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}

	for _, block := range res.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}

	log.Warn("anthropic response had no text content")
	return fallbackReply, nil
}
