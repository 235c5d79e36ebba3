package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// CloudStorage uploads files to a Google Cloud Storage bucket. Selected with
// STORAGE_DRIVER=gcs for deployments where the pods have no durable disk.
type CloudStorage struct {
	BucketName string
	Ctx        context.Context
	Client     *storage.Client
}

// NewCloudStorage creates a GCS-backed Storage using ambient credentials.
func NewCloudStorage(bucketName string) (*CloudStorage, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	return &CloudStorage{
		BucketName: bucketName,
		Ctx:        ctx,
		Client:     client,
	}, nil
}

// Save writes fileData to the bucket and returns the object's public URL.
func (c *CloudStorage) Save(objectName string, fileData io.Reader) (string, error) {
	bucket := c.Client.Bucket(c.BucketName)
	obj := bucket.Object(objectName)
	wc := obj.NewWriter(c.Ctx)
	if _, err := io.Copy(wc, fileData); err != nil {
		return "", fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close object writer: %v", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.BucketName, objectName), nil
}
