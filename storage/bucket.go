package storage

import (
	"context"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/helloworldpark/tickle-upper-limit/logger"
	"google.golang.org/api/option"
)

// DefaultPrefix is the object prefix of mirrored notes.
const DefaultPrefix = "tickle-upper-limit"

// Bucket mirrors written notes to a GCS bucket.
type Bucket struct {
	client *gcs.Client
	bucket *gcs.BucketHandle
	prefix string
}

// NewBucket connects to GCS. credentialsFile may be empty to use the default credentials.
func NewBucket(ctx context.Context, name, prefix, credentialsFile string) (*Bucket, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, newError("connecting to GCS", err)
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Bucket{
		client: client,
		bucket: client.Bucket(name),
		prefix: prefix,
	}, nil
}

// ObjectPath is the object name of a note file.
func ObjectPath(prefix, fileName string) string {
	return path.Join(strings.Trim(prefix, "/"), fileName)
}

// Write uploads contents as fileName under the prefix and returns the object path.
func (b *Bucket) Write(ctx context.Context, fileName string, contents []byte) (string, error) {
	filePath := ObjectPath(b.prefix, fileName)
	writer := b.bucket.Object(filePath).NewWriter(ctx)
	writer.ContentType = "text/markdown; charset=utf-8"
	if _, err := writer.Write(contents); err != nil {
		writer.Close()
		return filePath, newError("uploading "+filePath, err)
	}
	if err := writer.Close(); err != nil {
		return filePath, newError("uploading "+filePath, err)
	}
	logger.Info("[Storage] Mirrored note to gs://%s", filePath)
	return filePath, nil
}

// Close closes the GCS client.
func (b *Bucket) Close() error {
	return b.client.Close()
}
