package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadBot_DefaultsWhenFileAbsent(t *testing.T) {
	t.Parallel()

	cfg, err := LoadBot(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadBot falhou: %v", err)
	}
	if cfg.ClassifierThreshold != 0.7 {
		t.Errorf("ClassifierThreshold = %v; esperava 0.7", cfg.ClassifierThreshold)
	}
	if cfg.SimilarityThreshold != 0.6 {
		t.Errorf("SimilarityThreshold = %v; esperava 0.6", cfg.SimilarityThreshold)
	}
	if cfg.MaxSuggestions != 3 {
		t.Errorf("MaxSuggestions = %v; esperava 3", cfg.MaxSuggestions)
	}
	if cfg.AllowUntrained {
		t.Error("AllowUntrained deveria ser false por padrão")
	}
}

func TestLoadBot_ReadsFileAndFillsGaps(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "classifier_threshold: 0.8\nretrain_interval_mins: 60\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBot(path)
	if err != nil {
		t.Fatalf("LoadBot falhou: %v", err)
	}
	if cfg.ClassifierThreshold != 0.8 {
		t.Errorf("ClassifierThreshold = %v; esperava 0.8", cfg.ClassifierThreshold)
	}
	if cfg.RetrainInterval() != time.Hour {
		t.Errorf("RetrainInterval = %v; esperava 1h", cfg.RetrainInterval())
	}
	// Campos ausentes recebem os padrões.
	if cfg.SimilarityThreshold != 0.6 {
		t.Errorf("SimilarityThreshold = %v; esperava o padrão 0.6", cfg.SimilarityThreshold)
	}
}

func TestLoadBot_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("classifier_threshold: [isso não é um número"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBot(path); err == nil {
		t.Error("yaml inválido deveria falhar")
	}
}
