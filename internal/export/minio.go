package export

import (
	"bytes"
	"context"
	"encoding/json"
	"path"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/koustreak/dremcat/internal/errs"
)

// MinIOConfig holds the settings for the object-storage sink.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string

	// Prefix is prepended to every snapshot key. Optional.
	Prefix string
}

// MinIOSink is a Sink backed by MinIO / S3-compatible storage.
// It is safe for concurrent use by multiple goroutines.
type MinIOSink struct {
	client *miniogo.Client
	cfg    MinIOConfig
}

// NewMinIOSink connects to the storage endpoint and verifies the target
// bucket exists before returning.
func NewMinIOSink(ctx context.Context, cfg MinIOConfig) (*MinIOSink, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to create storage client", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, mapError(err, "cannot reach storage endpoint")
	}
	if !exists {
		return nil, errs.Newf(errs.ErrKindNotFound, "snapshot bucket %q does not exist", cfg.Bucket)
	}

	return &MinIOSink{client: client, cfg: cfg}, nil
}

// Put uploads the snapshot as JSON under
// <prefix>/<service>/<runid>.json and returns that key.
func (s *MinIOSink) Put(ctx context.Context, snap *Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", errs.Wrap(errs.ErrKindInvalidInput, "cannot serialize snapshot", err)
	}

	key := path.Join(s.cfg.Prefix, snap.Service, snap.RunID+".json")
	_, err = s.client.PutObject(ctx, s.cfg.Bucket, key,
		bytes.NewReader(data), int64(len(data)),
		miniogo.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", mapError(err, "failed to upload snapshot "+key)
	}
	return key, nil
}

// mapError translates MinIO native errors into *errs.Error.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	resp := miniogo.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchBucket", "NoSuchKey":
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	case "AccessDenied":
		return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
	case "RequestTimeout":
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}
	if resp.Code == "" {
		return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
	}
	return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
}
