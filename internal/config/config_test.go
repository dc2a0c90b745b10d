package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("EDUSHARE_ENDPOINT", "https://api.example.com/v1")
	t.Setenv("EDUSHARE_PROJECT_ID", "proj-1")
	t.Setenv("EDUSHARE_JWT_SECRET", "secret")
	t.Setenv("EDUSHARE_MONGO_URI", "mongodb://localhost:27017")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.Backend != "mongo" {
		t.Errorf("Backend = %q, want mongo", cfg.Backend)
	}
	if cfg.DatabaseName != "edushare" {
		t.Errorf("DatabaseName = %q, want edushare", cfg.DatabaseName)
	}
	if cfg.BucketName != "attachments" {
		t.Errorf("BucketName = %q, want attachments", cfg.BucketName)
	}
	if cfg.SessionTTL != 30*24*time.Hour {
		t.Errorf("SessionTTL = %v, want 720h", cfg.SessionTTL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("EDUSHARE_ENDPOINT", "")
	t.Setenv("EDUSHARE_PROJECT_ID", "")
	t.Setenv("EDUSHARE_JWT_SECRET", "")
	t.Setenv("EDUSHARE_MONGO_URI", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded with no required vars set")
	}

	// All of the missing names must appear in the single error
	for _, name := range []string{
		"EDUSHARE_ENDPOINT",
		"EDUSHARE_PROJECT_ID",
		"EDUSHARE_JWT_SECRET",
		"EDUSHARE_MONGO_URI",
	} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
}

func TestLoad_MemoryBackendSkipsMongoURI(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EDUSHARE_MONGO_URI", "")
	t.Setenv("EDUSHARE_BACKEND", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "memory" {
		t.Errorf("Backend = %q, want memory", cfg.Backend)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EDUSHARE_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an unknown backend")
	}
}

func TestLoad_SessionTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EDUSHARE_SESSION_TTL", "12h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v, want 12h", cfg.SessionTTL)
	}

	t.Setenv("EDUSHARE_SESSION_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a malformed TTL")
	}
}

func TestPreviewURL(t *testing.T) {
	cfg := &Config{
		PlatformEndpoint: "https://api.example.com/v1/",
		ProjectID:        "proj-1",
		BucketName:       "attachments",
	}

	got := cfg.PreviewURL("file-9")
	want := "https://api.example.com/v1/storage/buckets/attachments/files/file-9/view?project=proj-1"
	if got != want {
		t.Errorf("PreviewURL = %q, want %q", got, want)
	}
}
