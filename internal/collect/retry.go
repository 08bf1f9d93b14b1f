package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/JeromeFabre77/SpotWork/internal/ingest"
)

// withRetry runs fn up to attempts times with exponential backoff.
// The last error wins; context cancellation stops the loop early.
func withRetry(ctx context.Context, log *slog.Logger, attempts int, backoff time.Duration, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	delay := backoff
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		log.Warn("attempt failed, backing off",
			"attempt", i+1,
			"of", attempts,
			"delay", delay.String(),
			"err", lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// SaveFile writes a feature collection into the data directory.
func SaveFile(dir, filename string, fc ingest.FeatureCollection) error {
	if fc.Type == "" {
		fc.Type = "FeatureCollection"
	}
	b, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
