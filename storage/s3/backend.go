package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/webtop/data"
)

// S3Backend stores every key as one object in a bucket. Values are small
// JSON documents, so the object-per-key layout keeps reads and writes
// single round trips.
type S3Backend struct {
	mu sync.RWMutex

	client     *minio.Client
	bucketName string
	prefix     string
}

func NewS3Backend(endpoint, bucketName, accessKey, secretKey string, useSsl bool) (*S3Backend, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	return &S3Backend{
		client:     client,
		bucketName: bucketName,
		prefix:     "webtop/",
	}, nil
}

// Name returns the identifier name defined for this backend
func (*S3Backend) Name() string {
	return "s3"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (sb *S3Backend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	exists, err := sb.client.BucketExists(ctx, sb.bucketName)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("webtop: s3 bucket %q does not exist", sb.bucketName)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *S3Backend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return nil
}

func (sb *S3Backend) objectKey(key string) string {
	return sb.prefix + key
}

// Get returns the value stored under key.
func (sb *S3Backend) Get(ctx context.Context, key string) (string, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	object, err := sb.client.GetObject(ctx, sb.bucketName, sb.objectKey(key), minio.GetObjectOptions{})
	if err != nil {
		return "", err
	}
	defer object.Close()

	value, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", data.ErrNotExist
		}
		return "", err
	}

	return string(value), nil
}

// Set stores a value under key, replacing any previous value.
func (sb *S3Backend) Set(ctx context.Context, key, value string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.client.PutObject(ctx, sb.bucketName, sb.objectKey(key),
		bytes.NewReader([]byte(value)), int64(len(value)), minio.PutObjectOptions{
			ContentType: "application/json",
		})

	return err
}

// Delete removes a key. Deleting an absent key is not an error.
func (sb *S3Backend) Delete(ctx context.Context, key string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return sb.client.RemoveObject(ctx, sb.bucketName, sb.objectKey(key), minio.RemoveObjectOptions{})
}

// Keys returns every stored key with the given prefix in lexical order.
func (sb *S3Backend) Keys(ctx context.Context, prefix string) ([]string, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	objectsCh := sb.client.ListObjects(ctx, sb.bucketName, minio.ListObjectsOptions{
		Prefix:    sb.objectKey(prefix),
		Recursive: true,
	})

	keys := make([]string, 0)
	for object := range objectsCh {
		if object.Err != nil {
			return nil, object.Err
		}
		keys = append(keys, strings.TrimPrefix(object.Key, sb.prefix))
	}

	// Listings arrive per page; enforce a single lexical order
	sort.Strings(keys)

	return keys, nil
}
