package config

import (
	"testing"
	"time"
)

// allEnvVars lists every config env var that must be cleared between tests.
var allEnvVars = []string{
	"PIQ_DATABASE_URL", "PIQ_HTTP_ADDR", "PIQ_NATS_URL", "PIQ_AUTH_TOKEN",
	"PIQ_EXTRACTOR_URL", "PIQ_EXTRACTOR_API_KEY", "PIQ_EXTRACTOR_TIMEOUT",
	"PIQ_EXPORT_INTERVAL", "PIQ_EXPORT_S3_BUCKET", "PIQ_EXPORT_S3_ENDPOINT",
	"PIQ_EXPORT_S3_REGION", "PIQ_EXPORT_S3_KEY",
	"PIQ_EXPORT_GIT_REPO", "PIQ_EXPORT_GIT_FILE", "PIQ_EXPORT_GIT_BRANCH",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name         string
		env          map[string]string
		wantErr      bool
		wantHTTPAddr string
		wantNATSURL  string
	}{
		{
			name:    "MissingDatabaseURL",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name:         "Defaults",
			env:          map[string]string{"PIQ_DATABASE_URL": "postgres://localhost/projectiq"},
			wantHTTPAddr: ":8080",
		},
		{
			name: "Custom",
			env: map[string]string{
				"PIQ_DATABASE_URL": "postgres://db:5432/projectiq",
				"PIQ_HTTP_ADDR":    ":3000",
				"PIQ_NATS_URL":     "nats://localhost:4222",
			},
			wantHTTPAddr: ":3000",
			wantNATSURL:  "nats://localhost:4222",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DatabaseURL != tc.env["PIQ_DATABASE_URL"] {
				t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, tc.env["PIQ_DATABASE_URL"])
			}
			if cfg.HTTPAddr != tc.wantHTTPAddr {
				t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, tc.wantHTTPAddr)
			}
			if cfg.NATSURL != tc.wantNATSURL {
				t.Errorf("NATSURL = %q, want %q", cfg.NATSURL, tc.wantNATSURL)
			}
		})
	}
}

func TestLoadExportDefaults(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("PIQ_DATABASE_URL", "postgres://localhost/projectiq")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ExportInterval != 3*time.Minute {
		t.Errorf("ExportInterval = %v, want 3m", cfg.ExportInterval)
	}
	if cfg.ExportS3Region != "us-east-1" {
		t.Errorf("ExportS3Region = %q, want %q", cfg.ExportS3Region, "us-east-1")
	}
	if cfg.ExportS3Key != "projectiq/backup.jsonl" {
		t.Errorf("ExportS3Key = %q, want %q", cfg.ExportS3Key, "projectiq/backup.jsonl")
	}
	if cfg.ExtractorTimeout != 2*time.Minute {
		t.Errorf("ExtractorTimeout = %v, want 2m", cfg.ExtractorTimeout)
	}
	if cfg.ExportGitFile != "projectiq/backup.jsonl" {
		t.Errorf("ExportGitFile = %q", cfg.ExportGitFile)
	}
	if cfg.ExportGitBranch != "main" {
		t.Errorf("ExportGitBranch = %q, want main", cfg.ExportGitBranch)
	}
}

func TestLoadExportCustom(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("PIQ_DATABASE_URL", "postgres://localhost/projectiq")
	t.Setenv("PIQ_EXPORT_INTERVAL", "10m")
	t.Setenv("PIQ_EXPORT_S3_BUCKET", "my-bucket")
	t.Setenv("PIQ_EXPORT_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("PIQ_EXPORT_S3_REGION", "eu-west-1")
	t.Setenv("PIQ_EXPORT_S3_KEY", "custom/key.jsonl")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ExportInterval != 10*time.Minute {
		t.Errorf("ExportInterval = %v, want 10m", cfg.ExportInterval)
	}
	if cfg.ExportS3Bucket != "my-bucket" {
		t.Errorf("ExportS3Bucket = %q", cfg.ExportS3Bucket)
	}
	if cfg.ExportS3Endpoint != "http://minio:9000" {
		t.Errorf("ExportS3Endpoint = %q", cfg.ExportS3Endpoint)
	}
	if cfg.ExportS3Region != "eu-west-1" {
		t.Errorf("ExportS3Region = %q", cfg.ExportS3Region)
	}
	if cfg.ExportS3Key != "custom/key.jsonl" {
		t.Errorf("ExportS3Key = %q", cfg.ExportS3Key)
	}
}

func TestLoadInvalidInterval(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("PIQ_DATABASE_URL", "postgres://localhost/projectiq")
	t.Setenv("PIQ_EXPORT_INTERVAL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PIQ_EXPORT_INTERVAL")
	}
}

func TestLoadExportDisabled(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("PIQ_DATABASE_URL", "postgres://localhost/projectiq")
	t.Setenv("PIQ_EXPORT_INTERVAL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ExportInterval != 0 {
		t.Errorf("ExportInterval = %v, want 0 (disabled)", cfg.ExportInterval)
	}
}

func TestEnvOrDefault(t *testing.T) {
	for _, tc := range []struct {
		name     string
		key      string
		envVal   string
		fallback string
		want     string
	}{
		{"EmptyUsesDefault", "TEST_ENVDEFAULT_EMPTY", "", "default-val", "default-val"},
		{"SetUsesEnv", "TEST_ENVDEFAULT_SET", "custom", "default-val", "custom"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envVal)
			got := envOrDefault(tc.key, tc.fallback)
			if got != tc.want {
				t.Errorf("envOrDefault(%q, %q) = %q, want %q", tc.key, tc.fallback, got, tc.want)
			}
		})
	}
}
