// Package storage provides metadata document backends behind a URI-scheme
// factory.
//
// The registry core stores and returns ticket metadata locations as opaque
// strings; this package is the external component that resolves those
// locations into documents and publishes new documents for use at mint
// time.
//
// Supported URI schemes:
//
//   - file:///var/lib/ticketing/metadata/<hash>.json
//   - http://host/path and https://host/path (read-only)
//   - ipfs://<cid>
//   - s3://bucket/key?region=us-west-2
//
// Fetching dispatches on the scheme of the stored location. Publishing goes
// to the backend configured on the factory (file directory, IPFS API node,
// or S3 bucket); documents are content-addressed where the backend allows
// it, so storing the same bytes twice yields the same location.
package storage
