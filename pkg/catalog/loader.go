package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Loader fetches the catalog document over HTTP.
type Loader struct {
	client *http.Client
	url    string
	log    zerolog.Logger
}

// NewLoader builds a loader for the catalog document at url. A nil client
// falls back to http.DefaultClient.
func NewLoader(client *http.Client, url string, log zerolog.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		client: client,
		url:    url,
		log:    log.With().Str("component", "catalog").Logger(),
	}
}

// Load fetches and indexes the catalog. Called once per page session; a
// failure here leaves product saving unavailable but the rest of the page
// usable, so callers log and continue with a nil catalog.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	l.log.Debug().Int("products", len(products)).Msg("catalog loaded")
	return New(products), nil
}
