// Package snapshot exports the record collection as a JSON object to S3
// compatible storage.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/erazemk/bamboorat/internal/config"
	"github.com/erazemk/bamboorat/internal/model"
)

// ObjectStore is the subset of the MinIO client used by the exporter.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Snapshot is the exported document.
type Snapshot struct {
	ExportedAt time.Time      `json:"exportedAt"`
	Project    string         `json:"project"`
	Records    []model.Record `json:"records"`
}

// Result describes an uploaded snapshot.
type Result struct {
	Bucket  string
	Key     string
	Size    int64
	Records int
}

// Exporter writes snapshots into one bucket.
type Exporter struct {
	store   ObjectStore
	bucket  string
	project string
	now     func() time.Time
}

// NewClient creates a MinIO client from the configuration.
func NewClient(cfg *config.Config) (*minio.Client, error) {
	if cfg.S3Endpoint == "" {
		return nil, errors.New("object storage endpoint is not configured")
	}
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return client, nil
}

// NewExporter returns an exporter writing to bucket. A nil clock uses time.Now.
func NewExporter(store ObjectStore, bucket, project string, now func() time.Time) *Exporter {
	if now == nil {
		now = time.Now
	}
	return &Exporter{store: store, bucket: bucket, project: project, now: now}
}

// EnsureBucket creates the bucket if it does not exist.
func (e *Exporter) EnsureBucket(ctx context.Context) error {
	exists, err := e.store.BucketExists(ctx, e.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", e.bucket, err)
	}
	if !exists {
		if err := e.store.MakeBucket(ctx, e.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket %s: %w", e.bucket, err)
		}
	}
	return nil
}

// Key returns the object key of a snapshot taken at t.
func (e *Exporter) Key(t time.Time) string {
	return fmt.Sprintf("snapshots/%s/%s.json", e.project, t.UTC().Format("20060102T150405Z"))
}

// Export uploads records as a new snapshot object.
func (e *Exporter) Export(ctx context.Context, records []model.Record) (*Result, error) {
	if records == nil {
		records = []model.Record{}
	}

	snap := Snapshot{
		ExportedAt: e.now().UTC(),
		Project:    e.project,
		Records:    records,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	key := e.Key(snap.ExportedAt)
	opts := minio.PutObjectOptions{ContentType: "application/json"}
	_, err = e.store.PutObject(ctx, e.bucket, key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	return &Result{
		Bucket:  e.bucket,
		Key:     key,
		Size:    int64(len(data)),
		Records: len(records),
	}, nil
}
