package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/config"
)

// ObjectStore is a Client backed by an S3-compatible object store.
type ObjectStore struct {
	client *minio.Client
	bucket string
}

// NewObjectStore connects to the configured endpoint. The bucket is the
// environment name ("dev", "prod") and must already exist.
func NewObjectStore(ctx context.Context, cfg config.StorageConfig, bucket string) (*ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", bucket, err)
	}
	if !exists {
		return nil, &apperr.ConfigError{Message: fmt.Sprintf("storage bucket %q does not exist", bucket)}
	}

	return &ObjectStore{client: client, bucket: bucket}, nil
}

func (o *ObjectStore) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) error {
	if err := ValidateFolder(folder); err != nil {
		return err
	}
	key := path.Join(folder, TempDir, filename)
	_, err := o.client.PutObject(ctx, o.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

func (o *ObjectStore) List(ctx context.Context, folder, dir string) ([]string, error) {
	if err := ValidateFolder(folder); err != nil {
		return nil, err
	}
	prefix := path.Join(folder, dir) + "/"

	var files []string
	for obj := range o.client.ListObjects(ctx, o.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, obj.Err)
		}
		files = append(files, path.Base(obj.Key))
	}
	return files, nil
}

// Move copies each file from the temp area to folder/dest and removes the
// temp object. S3 has no rename, so this is copy+delete per file.
func (o *ObjectStore) Move(ctx context.Context, folder string, files []string, dest string) error {
	if err := ValidateFolder(folder); err != nil {
		return err
	}
	for _, file := range files {
		src := path.Join(folder, TempDir, file)
		dst := path.Join(folder, dest, file)

		_, err := o.client.CopyObject(ctx,
			minio.CopyDestOptions{Bucket: o.bucket, Object: dst},
			minio.CopySrcOptions{Bucket: o.bucket, Object: src},
		)
		if err != nil {
			return fmt.Errorf("move %s to %s: %w", src, dst, err)
		}
		if err := o.client.RemoveObject(ctx, o.bucket, src, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove %s after move: %w", src, err)
		}
	}
	return nil
}

func (o *ObjectStore) Delete(ctx context.Context, folder, dir string, files []string) error {
	if err := ValidateFolder(folder); err != nil {
		return err
	}
	for _, file := range files {
		key := path.Join(folder, dir, file)
		if err := o.client.RemoveObject(ctx, o.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

func (o *ObjectStore) DeleteDir(ctx context.Context, folder, dir string) error {
	files, err := o.List(ctx, folder, dir)
	if err != nil {
		return err
	}
	return o.Delete(ctx, folder, dir, files)
}
