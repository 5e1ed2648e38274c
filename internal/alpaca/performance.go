package alpaca

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jwaldner/optionsim/internal/logger"
)

// SlowRequestThreshold marks a lookup as slow in the stats
const SlowRequestThreshold = 2 * time.Second

// PerformanceWrapper wraps a spot source with request timing
type PerformanceWrapper struct {
	source SpotSource

	mu               sync.Mutex
	totalRequests    int64
	failedRequests   int64
	totalDuration    time.Duration
	slowRequestCount int64
}

// NewPerformanceWrapper creates a wrapper around a spot source
func NewPerformanceWrapper(source SpotSource) *PerformanceWrapper {
	return &PerformanceWrapper{
		source: source,
	}
}

func (pw *PerformanceWrapper) Enabled() bool { return pw.source.Enabled() }

// SpotPrice wraps the source lookup with performance monitoring
func (pw *PerformanceWrapper) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	start := time.Now()
	price, err := pw.source.SpotPrice(ctx, symbol)
	duration := time.Since(start)

	pw.recordRequest(duration, err)

	logger.Debug.Printf("📡 API CALL: SpotPrice(%s) took %v", symbol, duration)
	if duration > SlowRequestThreshold {
		logger.Warn.Printf("⚠️  SLOW API CALL: SpotPrice(%s) took %v", symbol, duration)
	}

	return price, err
}

func (pw *PerformanceWrapper) recordRequest(duration time.Duration, err error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	pw.totalRequests++
	pw.totalDuration += duration
	if err != nil {
		pw.failedRequests++
	}
	if duration > SlowRequestThreshold {
		pw.slowRequestCount++
	}
}

// Stats returns request count, failures and average duration
func (pw *PerformanceWrapper) Stats() (requests, failed int64, avg time.Duration) {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if pw.totalRequests > 0 {
		avg = time.Duration(int64(pw.totalDuration) / pw.totalRequests)
	}
	return pw.totalRequests, pw.failedRequests, avg
}

// GetPerformanceStats returns current performance statistics
func (pw *PerformanceWrapper) GetPerformanceStats() string {
	requests, failed, avg := pw.Stats()

	pw.mu.Lock()
	slow := pw.slowRequestCount
	total := pw.totalDuration
	pw.mu.Unlock()

	return fmt.Sprintf(`
📊 Market Data Performance Stats
================================
Total Requests:    %d
Failed Requests:   %d
Average Duration:  %v
Total Time:        %v
Slow Requests:     %d (>%v)
`,
		requests,
		failed,
		avg,
		total,
		slow,
		SlowRequestThreshold,
	)
}

// Close logs the final performance report
func (pw *PerformanceWrapper) Close() {
	if requests, _, _ := pw.Stats(); requests > 0 {
		logger.Info.Printf("📊 Market Data Performance Report:%s", pw.GetPerformanceStats())
	}
}
