package etl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ovalmind/ovalmind/internal/logger"
)

// BucketConfig points at an object store holding the raw CSV dump.
type BucketConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// FetchCSVs downloads the known dataset files from the bucket into csvDir,
// so a run can start from object storage instead of a local dump. Optional
// files missing from the bucket are skipped.
func FetchCSVs(ctx context.Context, cfg BucketConfig, csvDir string) error {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("minio client: %w", err)
	}

	if err := os.MkdirAll(csvDir, 0o755); err != nil {
		return err
	}

	for _, src := range csvSources {
		dest := filepath.Join(csvDir, src.file)
		err := mc.FGetObject(ctx, cfg.Bucket, src.file, dest, minio.GetObjectOptions{})
		if err != nil {
			if src.optional {
				logger.Warn("optional object missing, skipping", "object", src.file, "error", err)
				continue
			}
			return fmt.Errorf("download %s/%s: %w", cfg.Bucket, src.file, err)
		}
		logger.Info("csv downloaded", "object", src.file)
	}

	return nil
}
