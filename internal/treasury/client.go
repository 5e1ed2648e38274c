package treasury

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jwaldner/optionsim/internal/config"
	"github.com/jwaldner/optionsim/internal/logger"
)

const (
	// DefaultBaseURL is the US Treasury fiscal data service
	DefaultBaseURL = "https://api.fiscaldata.treasury.gov/services/api/fiscal_service"

	// EmergencyRate is used until the first successful fetch
	EmergencyRate = 0.04

	defaultCacheTTL = time.Hour
)

// RateSource supplies the continuously compounded risk-free rate
type RateSource interface {
	RiskFreeRate(ctx context.Context) float64
	Name() string
}

// FixedRate is a constant rate taken from configuration
type FixedRate float64

func (f FixedRate) RiskFreeRate(context.Context) float64 { return float64(f) }

func (f FixedRate) Name() string { return "fixed" }

// NewRateSource returns the source selected by cfg.Source
func NewRateSource(cfg config.RatesConfig) RateSource {
	switch strings.ToLower(cfg.Source) {
	case "treasury":
		return NewTreasuryClient(DefaultBaseURL)
	default:
		return FixedRate(cfg.FixedRate)
	}
}

type TreasuryClient struct {
	httpClient *http.Client
	baseURL    string
	cacheTTL   time.Duration

	mu            sync.Mutex
	lastKnownRate float64
	lastFetchTime time.Time
}

type TreasuryResponse struct {
	Data []TreasuryRate `json:"data"`
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
}

type TreasuryRate struct {
	RecordDate            string `json:"record_date"`
	SecurityDesc          string `json:"security_desc"`
	AvgInterestRateAmount string `json:"avg_interest_rate_amt"`
}

// NewTreasuryClient does not touch the network; call Warm to prime the cache.
func NewTreasuryClient(baseURL string) *TreasuryClient {
	return &TreasuryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:       strings.TrimRight(baseURL, "/"),
		cacheTTL:      defaultCacheTTL,
		lastKnownRate: EmergencyRate,
	}
}

func (tc *TreasuryClient) Name() string { return "treasury" }

// Warm fetches the current rate so the first request does not pay for it
func (tc *TreasuryClient) Warm(ctx context.Context) {
	if rate, err := tc.GetRiskFreeRate(ctx); err == nil {
		logger.Info.Printf("🏛️ Initialized Treasury client with rate: %.6f (%.3f%%)", rate, rate*100)
	} else {
		logger.Warn.Printf("⚠️ Failed to fetch initial Treasury rate: %v, using emergency default: %.2f%%", err, EmergencyRate*100)
	}
}

// fetchRiskFreeRate does the actual API call
func (tc *TreasuryClient) fetchRiskFreeRate(ctx context.Context) (float64, error) {
	url := fmt.Sprintf("%s/v2/accounting/od/avg_interest_rates?fields=avg_interest_rate_amt,record_date&filter=security_desc:eq:Treasury%%20Bills&sort=-record_date&page[size]=1", tc.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build Treasury request: %w", err)
	}
	resp, err := tc.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch Treasury rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("Treasury API returned status %d", resp.StatusCode)
	}

	var treasuryResp TreasuryResponse
	if err := json.NewDecoder(resp.Body).Decode(&treasuryResp); err != nil {
		return 0, fmt.Errorf("failed to decode Treasury response: %w", err)
	}

	if len(treasuryResp.Data) == 0 {
		return 0, fmt.Errorf("no Treasury rate data returned")
	}

	// Percentage string to decimal ("3.983" -> 0.03983)
	rateStr := treasuryResp.Data[0].AvgInterestRateAmount
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate %s: %w", rateStr, err)
	}
	return rate / 100.0, nil
}

// GetRiskFreeRate fetches the most recent Treasury Bill rate and updates the cache
func (tc *TreasuryClient) GetRiskFreeRate(ctx context.Context) (float64, error) {
	rate, err := tc.fetchRiskFreeRate(ctx)
	if err != nil {
		return 0, err
	}

	tc.mu.Lock()
	tc.lastKnownRate = rate
	tc.lastFetchTime = time.Now()
	tc.mu.Unlock()

	logger.Debug.Printf("📈 Fetched Treasury Bill rate: %.3f%% (%.6f decimal)", rate*100, rate)
	return rate, nil
}

// RiskFreeRate returns the cached rate while it is fresh, otherwise refetches
// and falls back to the last known rate when the API fails.
func (tc *TreasuryClient) RiskFreeRate(ctx context.Context) float64 {
	rate, age, ok := tc.GetCacheInfo()
	if ok && age < tc.cacheTTL {
		return rate
	}

	fresh, err := tc.GetRiskFreeRate(ctx)
	if err == nil {
		return fresh
	}
	logger.Warn.Printf("⚠️ Treasury API failed (%v), using last known rate: %.6f from %v ago",
		err, rate, age.Round(time.Minute))
	return rate
}

// GetCacheInfo returns information about the cached rate
func (tc *TreasuryClient) GetCacheInfo() (rate float64, age time.Duration, isInitialized bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.lastFetchTime.IsZero() {
		return tc.lastKnownRate, 0, false
	}
	return tc.lastKnownRate, time.Since(tc.lastFetchTime), true
}
