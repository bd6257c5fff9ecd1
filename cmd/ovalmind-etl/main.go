package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ovalmind/ovalmind/internal/config"
	"github.com/ovalmind/ovalmind/internal/etl"
	"github.com/ovalmind/ovalmind/internal/logger"
)

func init() {
	godotenv.Load()
}

func main() {
	skipBronze := flag.Bool("skip-bronze", false, "reuse the existing bronze database")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !*skipBronze {
		if cfg.ETL.Minio.Enabled {
			logger.Info("fetching csv dump from object storage", "bucket", cfg.ETL.Minio.Bucket)
			err := etl.FetchCSVs(ctx, etl.BucketConfig{
				Endpoint:  cfg.ETL.Minio.Endpoint,
				AccessKey: cfg.ETL.Minio.AccessKey,
				SecretKey: cfg.ETL.Minio.SecretKey,
				Bucket:    cfg.ETL.Minio.Bucket,
				UseSSL:    cfg.ETL.Minio.UseSSL,
			}, cfg.ETL.CSVDir)
			if err != nil {
				logger.Fatal("csv download failed", "error", err)
			}
		}

		if err := etl.IngestBronze(cfg.ETL.CSVDir, cfg.ETL.BronzeDBPath); err != nil {
			logger.Fatal("bronze ingest failed", "error", err)
		}
	}

	if err := etl.TransformSilver(cfg.ETL.BronzeDBPath, cfg.StatsDBPath); err != nil {
		logger.Fatal("silver transform failed", "error", err)
	}

	logger.Info("stats database ready", "path", cfg.StatsDBPath)
}
