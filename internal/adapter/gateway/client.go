package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/furnirent/internal/domain/model"
)

// ErrChargeNotRegistered indicates the gateway doesn't know the charge yet.
var ErrChargeNotRegistered = errors.New("charge not registered")

const defaultRetryAfter = 5 * time.Second

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes charge status lookups.
type Client interface {
	Fetch(ctx context.Context, ref string) (*model.ChargeReport, error)
}

// HTTPClient implements Client via the gateway HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// chargeResponse mirrors JSON payload of GET /api/charges/{ref}.
type chargeResponse struct {
	TransactionRef string          `json:"transaction_ref"`
	OrderID        string          `json:"order_id"`
	Kind           string          `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
}

// NewHTTPClient creates gateway client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch asks the gateway for the state of a charge.
func (c *HTTPClient) Fetch(ctx context.Context, ref string) (*model.ChargeReport, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/charges/", ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data chargeResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, fmt.Errorf("decode charge %s: %w", ref, err)
		}
		if data.TransactionRef == "" {
			data.TransactionRef = ref
		}
		return &model.ChargeReport{
			TransactionRef: data.TransactionRef,
			OrderID:        data.OrderID,
			Kind:           model.PaymentKind(strings.ToUpper(strings.TrimSpace(data.Kind))),
			Amount:         data.Amount,
			Status:         model.PaymentStatus(strings.ToUpper(strings.TrimSpace(data.Status))),
		}, nil
	case http.StatusNoContent:
		return nil, ErrChargeNotRegistered
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("gateway request failed",
			slog.String("transaction_ref", ref),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("gateway error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
		return 0
	}
	return defaultRetryAfter
}
