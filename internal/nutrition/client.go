package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"foodhub-be/internal/logger"
	"foodhub-be/internal/metrics"

	"go.uber.org/zap"
)

const (
	searchPageSize  = "5"
	searchDataTypes = "Branded,Foundation,Survey (FNDDS)"
	serviceName     = "usda"
)

type Searcher interface {
	Configured() bool
	Search(ctx context.Context, query string) (*SearchResponse, error)
}

type USDAClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewUSDAClient(apiKey, baseURL string, m *metrics.Metrics) *USDAClient {
	if apiKey == "" {
		logger.L().Warn("USDA API key is empty, nutrition lookup is disabled")
	}
	return &USDAClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		metrics: m,
	}
}

func (c *USDAClient) Configured() bool {
	return c.apiKey != ""
}

func (c *USDAClient) Search(ctx context.Context, query string) (res *SearchResponse, err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "client"),
		zap.String("service", serviceName),
		zap.String("query", query),
	)

	timer := metrics.StartTimer()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		c.metrics.ObserveExternal(serviceName, outcome, timer.Duration())
	}()

	params := url.Values{}
	params.Set("query", query)
	params.Set("api_key", c.apiKey)
	params.Set("pageSize", searchPageSize)
	params.Set("dataType", searchDataTypes)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/foods/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("usda request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("usda returned non-success status", zap.Int("status", resp.StatusCode))
		if resp.StatusCode == http.StatusForbidden {
			return nil, ErrInvalidAPIKey
		}
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var out SearchResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		log.Error("failed decoding usda response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}

	log.Debug("usda search done", zap.Int("foods", len(out.Foods)), zap.Int("total_hits", out.TotalHits))
	return &out, nil
}
