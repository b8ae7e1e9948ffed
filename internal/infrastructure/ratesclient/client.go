// Package ratesclient fetches live native-currency conversion rates from a
// spot-rate HTTP service. The fetched table replaces the currency rates of
// the on-disk snapshot when the feed is configured.
package ratesclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"asset_tracker/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client fetches conversion rates for a display currency.
type Client interface {
	GetCurrencyRates(ctx context.Context, vsCurrency string) (entity.CurrencyRatesState, error)
}

type clientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// ratesResponse is the wire shape of the spot-rate service: native currency
// code -> rate into the requested display currency.
type ratesResponse struct {
	Currency string             `json:"currency"`
	Rates    map[string]float64 `json:"rates"`
}

// New creates a rates client for the given base URL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) Client {
	return &clientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("RatesClient"),
	}
}

// GetCurrencyRates implements the Client interface.
func (c *clientImpl) GetCurrencyRates(ctx context.Context, vsCurrency string) (entity.CurrencyRatesState, error) {
	requestURL := fmt.Sprintf("%s/v1/rates?vs=%s", c.baseURL, strings.ToLower(vsCurrency))
	c.logger.Debug("Requesting currency rates", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return entity.CurrencyRatesState{}, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return entity.CurrencyRatesState{}, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Rates request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody))
		return entity.CurrencyRatesState{}, fmt.Errorf("rates request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var parsed ratesResponse
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return entity.CurrencyRatesState{}, fmt.Errorf("failed to unmarshal rates response from %s: %w", requestURL, err)
	}

	state := entity.CurrencyRatesState{
		CurrentCurrency: strings.ToLower(vsCurrency),
		CurrencyRates:   make(map[string]entity.CurrencyRate, len(parsed.Rates)),
	}
	for code, rate := range parsed.Rates {
		r := rate
		state.CurrencyRates[code] = entity.CurrencyRate{ConversionRate: &r}
	}

	c.logger.Debug("Currency rates fetched",
		zap.String("vsCurrency", state.CurrentCurrency),
		zap.Int("count", len(state.CurrencyRates)))
	return state, nil
}
