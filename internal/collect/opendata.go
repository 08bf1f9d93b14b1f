package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/JeromeFabre77/SpotWork/internal/ingest"
)

// Open-data GeoJSON export endpoints.
const (
	ParisWifiSitesURL = "https://opendata.paris.fr/api/explore/v2.1/catalog/datasets/sites-disposant-du-service-paris-wi-fi/exports/geojson"
	LibrariesIDFURL   = "https://data.iledefrance.fr/api/explore/v2.1/catalog/datasets/repertoire-bibliotheques/exports/geojson"
)

type OpenDataClient struct {
	client   *http.Client
	log      *slog.Logger
	attempts int
	backoff  time.Duration
}

func NewOpenDataClient(client *http.Client, log *slog.Logger) *OpenDataClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenDataClient{
		client:   client,
		log:      log,
		attempts: 3,
		backoff:  2 * time.Second,
	}
}

// FetchExport downloads one GeoJSON export and validates its shape.
func (c *OpenDataClient) FetchExport(ctx context.Context, exportURL string) (ingest.FeatureCollection, error) {
	var fc ingest.FeatureCollection
	err := withRetry(ctx, c.log, c.attempts, c.backoff, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/geo+json, application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
			return fmt.Errorf("export status %d: %s", resp.StatusCode, string(b))
		}

		fc = ingest.FeatureCollection{}
		if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
			return fmt.Errorf("decode export: %w", err)
		}
		return nil
	})
	if err != nil {
		return ingest.FeatureCollection{}, err
	}
	return fc, nil
}
