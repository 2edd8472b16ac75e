package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMergeInto(t *testing.T) {
	dst := &Config{
		StoreDriver: "badger",
		StorePath:   "/data/brik",
		LabelAliases: map[string]string{
			"veg":  "Vegetable peels",
			"saw":  "Sawdust",
			"junk": "Other",
		},
	}

	src := &Config{
		StoreDriver: "sqlite",
		LabelAliases: map[string]string{
			"saw": "Sand",
			"ew":  "E-waste",
		},
	}

	mergeInto(dst, src)

	if dst.StoreDriver != "sqlite" {
		t.Errorf("expected StoreDriver to be %q, got %q", "sqlite", dst.StoreDriver)
	}
	if dst.StorePath != "/data/brik" {
		t.Errorf("expected StorePath to be %q, got %q", "/data/brik", dst.StorePath)
	}

	if dst.LabelAliases["veg"] != "Vegetable peels" {
		t.Errorf("expected LabelAliases[veg] to be %q, got %q", "Vegetable peels", dst.LabelAliases["veg"])
	}
	if dst.LabelAliases["saw"] != "Sand" {
		t.Errorf("expected LabelAliases[saw] to be %q, got %q", "Sand", dst.LabelAliases["saw"])
	}
	if dst.LabelAliases["ew"] != "E-waste" {
		t.Errorf("expected LabelAliases[ew] to be %q, got %q", "E-waste", dst.LabelAliases["ew"])
	}
}

func TestMergeIntoNil(t *testing.T) {
	// Must not panic either way round.
	mergeInto(nil, &Config{})
	mergeInto(&Config{}, nil)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := `{
		"store_driver": "sqlite",
		"store_path": "/tmp/brik.db",
		"label_aliases": {"veg": "Vegetable peels"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.StoreDriver != "sqlite" {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, "sqlite")
	}
	if cfg.StorePath != "/tmp/brik.db" {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, "/tmp/brik.db")
	}
	if cfg.LabelAliases["veg"] != "Vegetable peels" {
		t.Errorf("LabelAliases[veg] = %q, want %q", cfg.LabelAliases["veg"], "Vegetable peels")
	}
}

func TestLoadConfigBadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() on malformed JSON should fail")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("LoadConfig() on a missing file should fail")
	}
}
