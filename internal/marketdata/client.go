package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"volchart/internal/config"
	apperrors "volchart/internal/errors"
	"volchart/internal/infrastructure"
	"volchart/pkg/contracts/domain"
)

const (
	historicalQuotesPath = "/cryptocurrency/quotes/historical"
	apiKeyHeader         = "X-CMC_PRO_API_KEY"
)

// Client is a CoinMarketCap historical quotes client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	metrics    *infrastructure.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records every request on m
func WithMetrics(m *infrastructure.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client. An API key is required.
func NewClient(cfg config.MarketDataConfig, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewConfigError("CoinMarketCap API key not set", nil).
			WithContext("env", config.EnvPrefix+"_MARKET_DATA_API_KEY")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = infrastructure.WithComponent(c.logger, "marketdata")

	return c, nil
}

type historicalResponse struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
	Data []struct {
		Timestamp time.Time `json:"timestamp"`
		Quote     struct {
			USD struct {
				Volume24h float64 `json:"volume_24h"`
			} `json:"USD"`
		} `json:"quote"`
	} `json:"data"`
}

// ClampDays limits a request to the history the API serves
func ClampDays(days int) int {
	if days > config.MaxHistoricalDays {
		return config.MaxHistoricalDays
	}
	return days
}

// HistoricalVolume fetches daily volume for symbol over the days ending at
// end, oldest first.
func (c *Client) HistoricalVolume(ctx context.Context, symbol string, days int, end time.Time) (records []domain.VolumeRecord, err error) {
	if symbol == "" {
		return nil, apperrors.NewAppValidationError("token symbol is required")
	}
	if days <= 0 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("days must be positive, got %d", days))
	}
	days = ClampDays(days)
	start := end.AddDate(0, 0, -days)

	began := time.Now()
	defer func() {
		c.metrics.RecordFetch(ctx, time.Since(began), err)
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.NewNetworkError("rate limiter", err)
	}

	req, err := c.newRequest(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "requesting historical quotes",
		slog.String("symbol", symbol),
		slog.Int("days", days),
		slog.Time("start", start),
		slog.Time("end", end))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("error making request", err).
			WithContext("symbol", symbol)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError("error reading response", err)
	}

	var result historicalResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("API request failed with status: %s", resp.Status)
		if decodeErr == nil && result.Status.ErrorMessage != "" {
			msg += ": " + result.Status.ErrorMessage
		}
		return nil, apperrors.NewNetworkError(msg, nil).
			WithContext("status_code", resp.StatusCode).
			WithContext("symbol", symbol)
	}
	if decodeErr != nil {
		return nil, apperrors.NewParsingError("error decoding response", decodeErr)
	}

	records = make([]domain.VolumeRecord, 0, len(result.Data))
	for _, d := range result.Data {
		records = append(records, domain.VolumeRecord{
			Date:   d.Timestamp.UTC(),
			Volume: d.Quote.USD.Volume24h,
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	c.logger.InfoContext(ctx, "historical quotes received",
		slog.String("symbol", symbol),
		slog.Int("records", len(records)))

	return records, nil
}

func (c *Client) newRequest(ctx context.Context, symbol string, start, end time.Time) (*http.Request, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("time_start", start.Format(time.RFC3339))
	q.Set("time_end", end.Format(time.RFC3339))
	q.Set("interval", "1d")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+historicalQuotesPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewConfigError("error creating request", err).
			WithContext("base_url", c.baseURL)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
