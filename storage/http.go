package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// maxMetadataSize caps a fetched metadata document at 1MB.
const maxMetadataSize = 1024 * 1024

// HTTPBackend fetches metadata documents over plain HTTP(S). It is
// read-only: hosted metadata is published out of band.
type HTTPBackend struct {
	client *http.Client
	log    *slog.Logger
}

// NewHTTPBackend creates an HTTP metadata backend.
func NewHTTPBackend(log *slog.Logger) *HTTPBackend {
	return &HTTPBackend{
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

// Fetch performs a GET against the location URI. A 404 maps to
// ErrMetadataNotFound; connection failures map to ErrBackendUnavailable.
func (b *HTTPBackend) Fetch(ctx context.Context, loc interfaces.MetadataLocation) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.Raw, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidLocationURI, err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.log.Warn("metadata host unreachable", slog.String("uri", loc.Raw), "err", err)
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, interfaces.ErrMetadataNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("metadata host returned status %d for %s", resp.StatusCode, loc.Raw)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata response: %w", err)
	}

	b.log.Debug("fetched metadata over http",
		slog.String("uri", loc.Raw),
		slog.Int("size", len(data)))
	return data, nil
}

// Store is unsupported; the HTTP backend is read-only.
func (b *HTTPBackend) Store(ctx context.Context, data []byte) (interfaces.MetadataLocation, error) {
	return interfaces.MetadataLocation{}, interfaces.ErrReadOnlyBackend
}

// LocationURI returns the URI identifying this backend instance.
func (b *HTTPBackend) LocationURI() string {
	return "http://"
}
