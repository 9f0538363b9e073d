package storage

import (
	"fmt"
	"log/slog"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// Config carries the backend settings the factory needs beyond what a
// location URI encodes.
type Config struct {
	// IPFSAPIAddr is the host:port of the IPFS API node used for both
	// fetching and pinning. Fetch locations only carry the CID.
	IPFSAPIAddr string

	// PublishDir is the directory file-backend stores write to.
	PublishDir string

	// S3Region, S3Endpoint, S3AccessKey, and S3SecretKey configure the S3
	// backend. Credentials are optional for public buckets.
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// Factory creates metadata backends from parsed locations. It implements
// interfaces.MetadataBackendFactory.
type Factory struct {
	cfg Config
	log *slog.Logger
}

// NewFactory creates a backend factory with the given configuration.
func NewFactory(cfg Config, log *slog.Logger) *Factory {
	return &Factory{cfg: cfg, log: log}
}

// BackendFor creates the metadata backend matching the location's scheme.
func (f *Factory) BackendFor(loc interfaces.MetadataLocation) (interfaces.MetadataBackend, error) {
	switch loc.Scheme {
	case "file":
		dir := f.cfg.PublishDir
		return NewFileBackend(dir, f.log)
	case "http", "https":
		return NewHTTPBackend(f.log), nil
	case "ipfs":
		return NewIPFSBackend(f.cfg.IPFSAPIAddr, f.log)
	case "s3":
		bucket := loc.Host
		region := f.cfg.S3Region
		if qr := loc.Query.Get("region"); qr != "" {
			region = qr
		}
		return NewS3Backend(bucket, region, f.cfg.S3Endpoint, f.cfg.S3AccessKey, f.cfg.S3SecretKey, f.log)
	default:
		return nil, fmt.Errorf("%w: unsupported backend scheme %q", interfaces.ErrInvalidLocationURI, loc.Scheme)
	}
}
