// Package dataset fetches the category datasets and builds the store.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JeromeFabre77/SpotWork/internal/core/model"
	"github.com/JeromeFabre77/SpotWork/internal/core/observability"
	"github.com/JeromeFabre77/SpotWork/internal/ingest"
	"github.com/JeromeFabre77/SpotWork/internal/store"
)

// ErrNoData means every category failed to load; there is nothing to
// render. A single failed category is not an error: the others still
// contribute (partial degradation).
var ErrNoData = errors.New("no data available")

// Source names one category dataset: an http(s) URL or a local path.
type Source struct {
	Category model.Category
	URL      string
}

type Loader struct {
	client *http.Client
	log    *slog.Logger
}

func NewLoader(client *http.Client, log *slog.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client, log: log}
}

// Load fetches every source concurrently and waits for all of them
// before assembling the store, so a partial result is never rendered.
// Category order in the store follows the source order, not fetch
// completion order.
func (l *Loader) Load(ctx context.Context, sources []Source) (*store.Store, error) {
	batches := make([][]model.Point, len(sources))
	failures := make([]error, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			start := time.Now()
			points, err := l.loadOne(ctx, src)
			observability.ObserveDatasetFetch(string(src.Category), err == nil, time.Since(start).Seconds())
			if err != nil {
				// terminal for this category; no interactive retry
				l.log.Error("dataset load failed", "category", src.Category, "url", src.URL, "err", err)
				failures[i] = err
				return nil
			}
			l.log.Info("dataset loaded", "category", src.Category, "points", len(points))
			batches[i] = points
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range failures {
		if err != nil {
			failed++
		}
	}
	if len(sources) > 0 && failed == len(sources) {
		return nil, fmt.Errorf("%w: all %d datasets failed", ErrNoData, failed)
	}

	return store.New(batches...), nil
}

func (l *Loader) loadOne(ctx context.Context, src Source) ([]model.Point, error) {
	raw, err := l.read(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	return ingest.Parse(raw, ingest.MappingFor(src.Category))
}

func (l *Loader) read(ctx context.Context, url string) ([]byte, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/geo+json, application/json")

		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch dataset: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
			return nil, fmt.Errorf("dataset status %d: %s", resp.StatusCode, string(b))
		}
		return io.ReadAll(resp.Body)
	}

	b, err := os.ReadFile(url)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	return b, nil
}
