package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFromFile_Valid(t *testing.T) {
	path := writeFile(t, "config.yaml",
		"model_path: /models/mlcds.json\nthresholds_mode: fixed\nlisten: :8080\n")

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.ModelPath != "/models/mlcds.json" {
		t.Errorf("model path = %q", c.ModelPath)
	}
	if c.Listen != ":8080" {
		t.Errorf("listen = %q", c.Listen)
	}
}

func TestLoadFromFile_FlagsWin(t *testing.T) {
	path := writeFile(t, "config.yaml", "model_path: /from/file.json\nlisten: :9999\n")

	c := Config{ModelPath: "/from/flag.json"}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.ModelPath != "/from/flag.json" {
		t.Errorf("flag value should win, got %q", c.ModelPath)
	}
	if c.Listen != ":9999" {
		t.Errorf("unset field should take file value, got %q", c.Listen)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	if err := c.LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate_ModelRequired(t *testing.T) {
	var c Config
	if err := c.Validate(); err == nil {
		t.Fatal("expected error when model path is empty")
	}
}

func TestValidate_ModelMustExist(t *testing.T) {
	c := Config{ModelPath: "/nonexistent/model.json"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for inaccessible model artifact")
	}
}

func TestValidate_DefaultsToFixedMode(t *testing.T) {
	c := Config{ModelPath: writeFile(t, "model.json", "{}")}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.ThresholdsMode != ThresholdsFixed {
		t.Errorf("mode = %q, want %q", c.ThresholdsMode, ThresholdsFixed)
	}
}

func TestValidate_ReferenceModeNeedsPath(t *testing.T) {
	c := Config{
		ModelPath:      writeFile(t, "model.json", "{}"),
		ThresholdsMode: ThresholdsReference,
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error: reference mode without reference path")
	}
}

func TestValidate_UnknownMode(t *testing.T) {
	c := Config{
		ModelPath:      writeFile(t, "model.json", "{}"),
		ThresholdsMode: "quantile",
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unknown thresholds mode")
	}
}

func TestValidateServe_ListenRequired(t *testing.T) {
	c := Config{ModelPath: writeFile(t, "model.json", "{}")}
	if err := c.ValidateServe(); err == nil {
		t.Fatal("expected error when listen address is empty")
	}
	c.Listen = ":8080"
	if err := c.ValidateServe(); err != nil {
		t.Fatalf("ValidateServe: %v", err)
	}
}
