package probe

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/melodig/trackmix/pkg/logger"
)

// Health polling constants.
const (
	healthMaxAttempts = 30
	healthRetryDelay  = 2 * time.Second
)

// Run executes the complete recommendation service probe.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	runID := uuid.NewString()
	logger.Get().Info(ctx, "starting trackmix service probe",
		logger.String("runID", runID),
		logger.String("baseURL", config.BaseURL),
		logger.Int("count", config.Count),
		logger.Int64("knownUser", config.KnownUserID),
		logger.Int64("unknownUser", config.UnknownUserID),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Wait for the service to come up
	if err := waitForService(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Run the scenarios in order
	scenarios := []struct {
		name string
		fn   func(context.Context, *HTTPClient, *Config) error
	}{
		{"popular fallback for unknown user", checkPopularFallback},
		{"offline ranking for known user", checkOfflineRanking},
		{"mixed blend after history report", checkMixedBlend},
		{"history clear round-trip", checkHistoryClear},
	}

	for _, s := range scenarios {
		stats.ScenariosRun++
		if err := s.fn(ctx, client, config); err != nil {
			stats.ScenariosFailed++
			log.Printf("FAILED: %s: %v", s.name, err)
			continue
		}
		stats.ScenariosPassed++
		log.Printf("PASSED: %s", s.name)
	}

	// Step 3: Report
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Printf(`Probe completed:
   Scenarios: %d
   Passed: %d
   Failed: %d
   Duration: %s
`, stats.ScenariosRun, stats.ScenariosPassed, stats.ScenariosFailed, stats.Duration)

	if stats.ScenariosFailed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", stats.ScenariosFailed, stats.ScenariosRun)
	}
	return nil
}

// waitForService polls /health until the service responds or attempts run out.
func waitForService(ctx context.Context, client *HTTPClient, config *Config) error {
	log.Printf("Waiting for service at %s...", config.BaseURL)

	for attempt := 1; attempt <= healthMaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var health HealthResponse
		if _, err := client.getJSON(config.BaseURL+"/health", &health); err == nil {
			log.Printf("Service is up (attempt %d): offline_users=%d similar=%d popular=%d",
				attempt, health.OfflineUsers, health.SimilarityRows, health.PopularityRows)
			return nil
		}
		time.Sleep(healthRetryDelay)
	}

	return fmt.Errorf("service not reachable after %d attempts", healthMaxAttempts)
}
