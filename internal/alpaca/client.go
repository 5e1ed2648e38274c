package alpaca

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/jwaldner/optionsim/internal/logger"
)

// ErrSpotUnavailable is returned when a symbol's spot price cannot be resolved
var ErrSpotUnavailable = errors.New("spot price unavailable")

// SpotSource resolves the current price of an underlying symbol
type SpotSource interface {
	SpotPrice(ctx context.Context, symbol string) (float64, error)
	Enabled() bool
}

// tradeFetcher is the part of the market data client used here
type tradeFetcher interface {
	GetLatestTrade(symbol string, req marketdata.GetLatestTradeRequest) (*marketdata.Trade, error)
}

// Client reads the latest trade price from Alpaca market data
type Client struct {
	data tradeFetcher
}

// NewClient builds a market data client. An empty baseURL uses Alpaca's data host.
func NewClient(apiKey, secretKey, baseURL string) *Client {
	return &Client{
		data: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: secretKey,
			BaseURL:   baseURL,
		}),
	}
}

// NewSpotSource returns a monitored Alpaca source when keys are configured,
// otherwise a source that always reports ErrSpotUnavailable.
func NewSpotSource(apiKey, secretKey string) SpotSource {
	if apiKey == "" || secretKey == "" {
		logger.Info.Printf("📡 Alpaca keys not configured, symbol lookup disabled")
		return Disabled{}
	}
	return NewPerformanceWrapper(NewClient(apiKey, secretKey, ""))
}

func (c *Client) Enabled() bool { return true }

// SpotPrice returns the last trade price for symbol
func (c *Client) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, fmt.Errorf("%w: empty symbol", ErrSpotUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrSpotUnavailable, symbol, err)
	}

	trade, err := c.data.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrSpotUnavailable, symbol, err)
	}
	if trade == nil || !(trade.Price > 0) {
		return 0, fmt.Errorf("%w: %s: no trade price", ErrSpotUnavailable, symbol)
	}

	logger.Debug.Printf("💰 %s last trade %.4f", symbol, trade.Price)
	return trade.Price, nil
}

// Disabled is used when no market data credentials are configured
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) SpotPrice(_ context.Context, symbol string) (float64, error) {
	return 0, fmt.Errorf("%w: %s: market data not configured", ErrSpotUnavailable, symbol)
}
