package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // PIQ_DATABASE_URL (required)
	HTTPAddr    string // PIQ_HTTP_ADDR (default ":8080")
	NATSURL     string // PIQ_NATS_URL (optional, empty = no events)
	AuthToken   string // PIQ_AUTH_TOKEN (optional, empty = auth disabled)

	// Extraction service settings
	ExtractorURL     string        // PIQ_EXTRACTOR_URL (optional, empty = extraction disabled)
	ExtractorAPIKey  string        // PIQ_EXTRACTOR_API_KEY (optional)
	ExtractorTimeout time.Duration // PIQ_EXTRACTOR_TIMEOUT (default 2m)

	// Export settings
	ExportInterval   time.Duration // PIQ_EXPORT_INTERVAL (default 3m; 0 = disabled)
	ExportS3Bucket   string        // PIQ_EXPORT_S3_BUCKET (enables S3 when set)
	ExportS3Endpoint string        // PIQ_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ExportS3Region   string        // PIQ_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Key      string        // PIQ_EXPORT_S3_KEY (default "projectiq/backup.jsonl")
	ExportGitRepo    string        // PIQ_EXPORT_GIT_REPO (enables git when set; path to a local clone)
	ExportGitFile    string        // PIQ_EXPORT_GIT_FILE (default "projectiq/backup.jsonl")
	ExportGitBranch  string        // PIQ_EXPORT_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("PIQ_DATABASE_URL"),
		HTTPAddr:         envOrDefault("PIQ_HTTP_ADDR", ":8080"),
		NATSURL:          os.Getenv("PIQ_NATS_URL"),
		AuthToken:        os.Getenv("PIQ_AUTH_TOKEN"),
		ExtractorURL:     os.Getenv("PIQ_EXTRACTOR_URL"),
		ExtractorAPIKey:  os.Getenv("PIQ_EXTRACTOR_API_KEY"),
		ExportS3Bucket:   os.Getenv("PIQ_EXPORT_S3_BUCKET"),
		ExportS3Endpoint: os.Getenv("PIQ_EXPORT_S3_ENDPOINT"),
		ExportS3Region:   envOrDefault("PIQ_EXPORT_S3_REGION", "us-east-1"),
		ExportS3Key:      envOrDefault("PIQ_EXPORT_S3_KEY", "projectiq/backup.jsonl"),
		ExportGitRepo:    os.Getenv("PIQ_EXPORT_GIT_REPO"),
		ExportGitFile:    envOrDefault("PIQ_EXPORT_GIT_FILE", "projectiq/backup.jsonl"),
		ExportGitBranch:  envOrDefault("PIQ_EXPORT_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("PIQ_DATABASE_URL is required")
	}

	var err error
	if c.ExtractorTimeout, err = durationEnv("PIQ_EXTRACTOR_TIMEOUT", "2m"); err != nil {
		return nil, err
	}
	if c.ExportInterval, err = durationEnv("PIQ_EXPORT_INTERVAL", "3m"); err != nil {
		return nil, err
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key, fallback string) (time.Duration, error) {
	v := envOrDefault(key, fallback)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
