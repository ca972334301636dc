package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Pipeline.SubjectTokenWidth != 3 {
		t.Errorf("SubjectTokenWidth = %d", cfg.Pipeline.SubjectTokenWidth)
	}
	if cfg.Pipeline.ArchiveEnabled {
		t.Error("archive should be disabled by default")
	}
	if cfg.Database.DBName == "" {
		t.Error("database name default missing")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  port: 9090\npipeline:\n  study_id: ST99\n  archive_enabled: true\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Pipeline.StudyID != "ST99" {
		t.Errorf("StudyID = %q", cfg.Pipeline.StudyID)
	}
	if !cfg.Pipeline.ArchiveEnabled {
		t.Error("archive_enabled not applied")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SDTM_PIPELINE_STUDY_ID", "ENVSTUDY")
	t.Setenv("SDTM_SERVER_PORT", "7070")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pipeline.StudyID != "ENVSTUDY" {
		t.Errorf("StudyID = %q", cfg.Pipeline.StudyID)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
}
