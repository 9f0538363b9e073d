package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// S3Backend stores metadata documents in an S3 or S3-compatible bucket.
// Without credentials it is limited to reading publicly accessible objects.
type S3Backend struct {
	client         *s3.S3
	bucket         string
	log            *slog.Logger
	locationURI    string
	hasWriteAccess bool
}

// NewS3Backend creates an S3 metadata backend for the given bucket. When
// accessKey and secretKey are empty the backend is read-only.
func NewS3Backend(bucket, region, endpoint, accessKey, secretKey string, log *slog.Logger) (*S3Backend, error) {
	if bucket == "" {
		return nil, fmt.Errorf("%w: s3 backend requires a bucket", interfaces.ErrInvalidLocationURI)
	}

	cfg := aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	hasWriteAccess := accessKey != "" && secretKey != ""
	if hasWriteAccess {
		cfg.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Backend{
		client:         s3.New(sess),
		bucket:         bucket,
		log:            log,
		locationURI:    fmt.Sprintf("s3://%s/?region=%s", bucket, region),
		hasWriteAccess: hasWriteAccess,
	}, nil
}

// Fetch retrieves the object at the location's key.
func (b *S3Backend) Fetch(ctx context.Context, loc interfaces.MetadataLocation) ([]byte, error) {
	key := strings.TrimPrefix(loc.Path, "/")

	out, err := b.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Host),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, interfaces.ErrMetadataNotFound
		}
		return nil, fmt.Errorf("failed to fetch metadata from S3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxMetadataSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata from S3: %w", err)
	}

	b.log.Debug("fetched metadata from S3",
		slog.String("bucket", loc.Host),
		slog.String("key", key),
		slog.Int("size", len(data)))
	return data, nil
}

// Store writes the document under its SHA-256 hash and returns the s3://
// location. Requires write credentials.
func (b *S3Backend) Store(ctx context.Context, data []byte) (interfaces.MetadataLocation, error) {
	if !b.hasWriteAccess {
		return interfaces.MetadataLocation{}, interfaces.ErrReadOnlyBackend
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:]) + ".json"

	_, err := b.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return interfaces.MetadataLocation{}, fmt.Errorf("failed to store metadata to S3: %w", err)
	}

	b.log.Debug("stored metadata to S3",
		slog.String("bucket", b.bucket),
		slog.String("key", key),
		slog.Int("size", len(data)))

	return interfaces.ParseMetadataLocation(fmt.Sprintf("s3://%s/%s", b.bucket, key))
}

// LocationURI returns the URI identifying this backend instance.
func (b *S3Backend) LocationURI() string {
	return b.locationURI
}
