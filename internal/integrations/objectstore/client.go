// Package objectstore wraps the S3 API for staging submission content.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the minimal S3 interface required by Client.
// *s3.Client from aws-sdk-go-v2 satisfies this interface.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Putter is the interface consumed by the stager. Depend on this rather than
// the concrete *Client to stay testable without real AWS calls.
type Putter interface {
	Put(ctx context.Context, key string, body []byte) error
}

// Client uploads opaque byte blobs to a single bucket.
type Client struct {
	api    s3API
	bucket string
}

// New creates a Client bound to the given bucket.
func New(api s3API, bucket string) (*Client, error) {
	if api == nil {
		return nil, errors.New("objectstore: api must not be nil")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("objectstore: bucket must not be empty")
	}
	return &Client{api: api, bucket: bucket}, nil
}

// Put uploads body under key. The content type is derived from the key's
// extension, falling back to application/octet-stream.
func (c *Client) Put(ctx context.Context, key string, body []byte) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("objectstore: key is required")
	}

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentTypeFor(key)),
	})
	if err != nil {
		return fmt.Errorf("objectstore: put %q: %w", key, err)
	}
	return nil
}

func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
