package graph

import (
	"context"
	"fmt"
	"time"
)

// PoolStats represents connection pool statistics.
// The Go driver does not expose runtime pool metrics; use the Neo4j metrics endpoint for those.
type PoolStats struct {
	MaxPoolSize int
}

// GetPoolStats returns the configured pool limits
func (c *Client) GetPoolStats() PoolStats {
	return PoolStats{MaxPoolSize: c.maxPoolSize}
}

// WatchPoolHealth runs periodic health checks until ctx is cancelled.
// Failures are logged, never returned: the API keeps serving and each request reports its own error.
func (c *Client) WatchPoolHealth(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.logger.WithField("interval", interval).Info("starting pool health monitor")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("pool health monitor stopped")
			return
		case <-ticker.C:
			if err := c.HealthCheck(ctx); err != nil {
				c.logger.WithError(err).Warn("pool health check failed")
			} else {
				c.logger.Debug("pool health check passed")
			}
		}
	}
}

// RecommendedPoolSize returns recommended pool size based on expected concurrency.
// 1.5x the concurrent requests, clamped to [10, 100].
func RecommendedPoolSize(expectedConcurrentRequests int) int {
	recommended := expectedConcurrentRequests * 3 / 2

	if recommended < 10 {
		return 10
	}
	if recommended > 100 {
		return 100
	}
	return recommended
}

// PoolHealthStatus represents the health of the connection pool
type PoolHealthStatus struct {
	Healthy       bool
	Message       string
	LastCheckTime time.Time
}

// CheckPoolHealth performs a connectivity check and reports how long it took
func (c *Client) CheckPoolHealth(ctx context.Context) (*PoolHealthStatus, error) {
	startTime := time.Now()
	err := c.HealthCheck(ctx)

	status := &PoolHealthStatus{
		LastCheckTime: time.Now(),
	}

	if err != nil {
		status.Healthy = false
		status.Message = "graph store unreachable"
		return status, err
	}

	checkDuration := time.Since(startTime)
	status.Healthy = true
	status.Message = fmt.Sprintf("pool healthy (check took %v)", checkDuration.Round(time.Millisecond))
	return status, nil
}
