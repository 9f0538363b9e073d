package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// IPFSBackend stores metadata documents on IPFS through an API node. Fetch
// locations carry only the CID (ipfs://<cid>); the API node address comes
// from the factory configuration.
type IPFSBackend struct {
	shell       *shell.Shell
	apiAddr     string
	log         *slog.Logger
	locationURI string
}

// NewIPFSBackend creates an IPFS backend connected to the given API
// address (host:port).
func NewIPFSBackend(apiAddr string, log *slog.Logger) (*IPFSBackend, error) {
	if apiAddr == "" {
		return nil, fmt.Errorf("%w: ipfs backend requires an API address", interfaces.ErrInvalidLocationURI)
	}

	return &IPFSBackend{
		shell:       shell.NewShell(apiAddr),
		apiAddr:     apiAddr,
		log:         log,
		locationURI: fmt.Sprintf("ipfs://%s/", apiAddr),
	}, nil
}

// Fetch retrieves the document behind the location's CID. Returns
// ErrBackendUnavailable when the API node is unreachable and
// ErrMetadataNotFound when the CID cannot be resolved.
func (b *IPFSBackend) Fetch(ctx context.Context, loc interfaces.MetadataLocation) ([]byte, error) {
	start := time.Now()
	cid := loc.Host

	if !b.shell.IsUp() {
		b.log.Warn("IPFS node unavailable", slog.String("apiAddr", b.apiAddr))
		return nil, interfaces.ErrBackendUnavailable
	}

	reader, err := b.shell.Cat("/ipfs/" + cid)
	if err != nil {
		if strings.Contains(err.Error(), "no link named") || strings.Contains(err.Error(), "invalid path") {
			b.log.Debug("metadata not found in IPFS",
				slog.String("cid", cid),
				slog.Duration("duration", time.Since(start)))
			return nil, interfaces.ErrMetadataNotFound
		}
		return nil, fmt.Errorf("failed to fetch metadata from IPFS: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxMetadataSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata from IPFS: %w", err)
	}

	b.log.Debug("fetched metadata from IPFS",
		slog.String("cid", cid),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))
	return data, nil
}

// Store adds and pins the document, returning its ipfs://<cid> location.
func (b *IPFSBackend) Store(ctx context.Context, data []byte) (interfaces.MetadataLocation, error) {
	if !b.shell.IsUp() {
		return interfaces.MetadataLocation{}, interfaces.ErrBackendUnavailable
	}

	cid, err := b.shell.Add(bytes.NewReader(data), shell.Pin(true))
	if err != nil {
		return interfaces.MetadataLocation{}, fmt.Errorf("failed to add metadata to IPFS: %w", err)
	}

	b.log.Debug("stored metadata to IPFS",
		slog.String("cid", cid),
		slog.Int("size", len(data)))

	return interfaces.ParseMetadataLocation("ipfs://" + cid)
}

// LocationURI returns the URI identifying this backend instance.
func (b *IPFSBackend) LocationURI() string {
	return b.locationURI
}
