package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yt-segment-extractor/infrastructure/config"
)

// mockPrompter plays back scripted answers
type mockPrompter struct {
	inputs   map[string]string
	confirms map[string]bool
}

func (m *mockPrompter) Input(message string, defaultValue string) (string, error) {
	if answer, ok := m.inputs[message]; ok {
		return answer, nil
	}
	return defaultValue, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if answer, ok := m.confirms[message]; ok {
		return answer, nil
	}
	return defaultValue, nil
}

func TestRunSetupWithPrompterDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config", "config.yaml")
	prompter := &mockPrompter{inputs: map[string]string{}, confirms: map[string]bool{}}

	if err := RunSetupWithPrompter(prompter, configPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}

	if cfg.UI.Runner != "streamlit" || cfg.UI.Port != 8501 {
		t.Errorf("UI = %+v, want defaults", cfg.UI)
	}
	if cfg.Metadata.Source != "ytdlp" {
		t.Errorf("Metadata.Source = %q, want %q", cfg.Metadata.Source, "ytdlp")
	}
	if cfg.Limits.MaxVideoDuration != 0 {
		t.Errorf("Limits.MaxVideoDuration = %d, want 0 (limits declined)", cfg.Limits.MaxVideoDuration)
	}
}

func TestRunSetupWithPrompterAPIAndLimits(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config", "config.yaml")
	prompter := &mockPrompter{
		inputs: map[string]string{
			"UI port:": "8502",
			"YouTube Data API key (leave empty to use OAuth):": "secret",
		},
		confirms: map[string]bool{
			"Use the YouTube Data API for metadata instead of yt-dlp?":     true,
			"Apply shared-deployment limits (duration/size/chapter caps)?": true,
		},
	}

	if err := RunSetupWithPrompter(prompter, configPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}

	if cfg.UI.Port != 8502 {
		t.Errorf("UI.Port = %d, want 8502", cfg.UI.Port)
	}
	if cfg.Metadata.Source != "api" || cfg.Metadata.APIKey != "secret" {
		t.Errorf("Metadata = %+v, want api source with key", cfg.Metadata)
	}
	if cfg.Limits.MaxVideoDuration != 3600 || cfg.Limits.MaxChapters != 20 || cfg.Limits.MaxFileSizeMB != 500 {
		t.Errorf("Limits = %+v, want the stock limits", cfg.Limits)
	}
}

func TestRunSetupWithPrompterInvalidPort(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config", "config.yaml")
	prompter := &mockPrompter{
		inputs:   map[string]string{"UI port:": "not-a-port"},
		confirms: map[string]bool{},
	}

	err := RunSetupWithPrompter(prompter, configPath)
	if err == nil || !strings.Contains(err.Error(), "invalid port") {
		t.Fatalf("error = %v, want invalid port error", err)
	}

	if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
		t.Error("config file should not be written on failure")
	}
}

func TestRunSetupWithPrompterDeclineOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("ui:\n  port: 9000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	prompter := &mockPrompter{
		inputs: map[string]string{},
		confirms: map[string]bool{
			"config.yaml already exists. Overwrite?": false,
		},
	}

	if err := RunSetupWithPrompter(prompter, configPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Port != 9000 {
		t.Error("existing config was overwritten after declining")
	}
}
