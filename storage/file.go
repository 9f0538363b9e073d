package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// FileBackend stores metadata documents on the local file system, primarily
// for development and tests. Stored documents are content-addressed by
// SHA-256 under the publish directory.
type FileBackend struct {
	publishDir  string
	log         *slog.Logger
	locationURI string
}

// NewFileBackend creates a file backend publishing into the given
// directory. The directory is created if absent.
func NewFileBackend(publishDir string, log *slog.Logger) (*FileBackend, error) {
	if publishDir == "" {
		return nil, fmt.Errorf("%w: file backend requires a publish directory", interfaces.ErrInvalidLocationURI)
	}
	if err := os.MkdirAll(publishDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create metadata directory: %w", err)
	}

	return &FileBackend{
		publishDir:  publishDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", publishDir),
	}, nil
}

// Fetch reads the document at the location's path. Returns
// ErrMetadataNotFound if the file does not exist.
func (b *FileBackend) Fetch(ctx context.Context, loc interfaces.MetadataLocation) ([]byte, error) {
	// A host component means a relative URI like file://dir/doc.json,
	// which would misresolve to /doc.json.
	if loc.Host != "" {
		return nil, fmt.Errorf("%w: file locations must use an absolute path (file:///...)", interfaces.ErrInvalidLocationURI)
	}

	data, err := os.ReadFile(loc.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, interfaces.ErrMetadataNotFound
		}
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	b.log.Debug("fetched metadata from file",
		slog.String("path", loc.Path),
		slog.Int("size", len(data)))
	return data, nil
}

// Store writes the document under its SHA-256 hash and returns the file
// location.
func (b *FileBackend) Store(ctx context.Context, data []byte) (interfaces.MetadataLocation, error) {
	sum := sha256.Sum256(data)
	path := filepath.Join(b.publishDir, hex.EncodeToString(sum[:])+".json")

	if err := os.WriteFile(path, data, 0644); err != nil {
		return interfaces.MetadataLocation{}, fmt.Errorf("failed to write metadata file: %w", err)
	}

	b.log.Debug("stored metadata to file",
		slog.String("path", path),
		slog.Int("size", len(data)))

	return interfaces.ParseMetadataLocation("file://" + path)
}

// LocationURI returns the URI identifying this backend instance.
func (b *FileBackend) LocationURI() string {
	return b.locationURI
}
