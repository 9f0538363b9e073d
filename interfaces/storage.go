package interfaces

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// Storage-layer errors. The registry core never touches metadata content;
// these belong to the surrounding resolution layer.
var (
	// ErrMetadataNotFound indicates the document behind a metadata location
	// does not exist.
	ErrMetadataNotFound = errors.New("metadata document not found")

	// ErrBackendUnavailable indicates the storage backend could not be
	// reached.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrReadOnlyBackend indicates the backend does not support storing
	// documents.
	ErrReadOnlyBackend = errors.New("storage backend is read-only")

	// ErrInvalidLocationURI indicates a malformed or unsupported metadata
	// location URI.
	ErrInvalidLocationURI = errors.New("invalid metadata location URI")
)

// MetadataLocation is a parsed metadata URI. The registry core stores and
// returns these as opaque strings; only the storage layer interprets them.
type MetadataLocation struct {
	Raw    string     // Original URI
	Scheme string     // Protocol
	Host   string     // Hostname, or content ID for ipfs
	Path   string     // Resource path
	Query  url.Values // Query parameters
}

// ParseMetadataLocation parses and validates a metadata URI.
//
// Supported schemes:
//
//   - file:///var/lib/ticketing/metadata/<hash>.json
//   - http://host/path and https://host/path
//   - ipfs://<cid>
//   - s3://bucket/key?region=us-west-2
func ParseMetadataLocation(uri string) (MetadataLocation, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return MetadataLocation{}, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	switch parsed.Scheme {
	case "file", "http", "https", "ipfs", "s3":
	default:
		return MetadataLocation{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocationURI, parsed.Scheme)
	}

	return MetadataLocation{
		Raw:    uri,
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   parsed.Path,
		Query:  parsed.Query(),
	}, nil
}

// String returns the original URI string.
func (loc MetadataLocation) String() string {
	return loc.Raw
}

// IsZero reports whether the location is unset.
func (loc MetadataLocation) IsZero() bool {
	return loc.Raw == ""
}

// MetadataBackend fetches and publishes ticket metadata documents. Content
// is treated as opaque bytes; the registry never validates what a URI
// points at.
type MetadataBackend interface {
	// Fetch retrieves the document at the given location.
	Fetch(ctx context.Context, loc MetadataLocation) ([]byte, error)

	// Store publishes a document and returns its canonical location.
	// Read-only backends return ErrReadOnlyBackend.
	Store(ctx context.Context, data []byte) (MetadataLocation, error)

	// LocationURI returns the URI identifying this backend instance.
	LocationURI() string
}

// MetadataBackendFactory creates metadata backends from parsed locations.
type MetadataBackendFactory interface {
	BackendFor(loc MetadataLocation) (MetadataBackend, error)
}
