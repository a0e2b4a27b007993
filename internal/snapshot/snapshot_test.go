package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/erazemk/bamboorat/internal/model"
)

type fakeObjectStore struct {
	buckets map[string]bool
	objects map[string][]byte
	putErr  error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (f *fakeObjectStore) BucketExists(_ context.Context, bucket string) (bool, error) {
	return f.buckets[bucket], nil
}

func (f *fakeObjectStore) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.buckets[bucket] = true
	return nil
}

func (f *fakeObjectStore) PutObject(_ context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[bucket+"/"+object] = data
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: size}, nil
}

var exportTime = time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

func TestEnsureBucket(t *testing.T) {
	store := newFakeObjectStore()
	e := NewExporter(store, "farm-bucket", "farm", nil)

	if err := e.EnsureBucket(context.Background()); err != nil {
		t.Fatalf("EnsureBucket: %v", err)
	}
	if !store.buckets["farm-bucket"] {
		t.Error("expected bucket to be created")
	}
	if err := e.EnsureBucket(context.Background()); err != nil {
		t.Errorf("EnsureBucket on existing bucket: %v", err)
	}
}

func TestExport(t *testing.T) {
	store := newFakeObjectStore()
	e := NewExporter(store, "farm-bucket", "farm", func() time.Time { return exportTime })

	records := []model.Record{
		{ID: "r1", Name: "A00031", Status: model.StatusPregnant},
		{ID: "r2", Name: "A00012"},
	}
	res, err := e.Export(context.Background(), records)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	wantKey := "snapshots/farm/20240601T123000Z.json"
	if res.Key != wantKey {
		t.Errorf("expected key %s, got %s", wantKey, res.Key)
	}
	if res.Records != 2 {
		t.Errorf("expected 2 records, got %d", res.Records)
	}

	data, ok := store.objects["farm-bucket/"+wantKey]
	if !ok {
		t.Fatal("expected object to be uploaded")
	}
	if int64(len(data)) != res.Size {
		t.Errorf("expected size %d, got %d", len(data), res.Size)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if snap.Project != "farm" || !snap.ExportedAt.Equal(exportTime) || len(snap.Records) != 2 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.Records[0].Name != "A00031" {
		t.Errorf("expected record order preserved, got %+v", snap.Records)
	}
}

func TestExportEmpty(t *testing.T) {
	store := newFakeObjectStore()
	e := NewExporter(store, "b", "p", func() time.Time { return exportTime })

	res, err := e.Export(context.Background(), nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var raw map[string]json.RawMessage
	json.Unmarshal(store.objects["b/"+res.Key], &raw)
	if string(raw["records"]) != "[]" {
		t.Errorf("expected empty records array, got %s", raw["records"])
	}
}

func TestExportUploadFailure(t *testing.T) {
	store := newFakeObjectStore()
	store.putErr = errors.New("bucket gone")
	e := NewExporter(store, "b", "p", nil)

	if _, err := e.Export(context.Background(), nil); err == nil {
		t.Error("expected upload error")
	}
}
