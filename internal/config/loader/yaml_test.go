package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
undo:
  max_history: 25
view:
  font_size: 16
script:
  path: ~/init.lua
`)

	config, err := LoadFile(memfs, "/config.yaml")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	undo, ok := config["undo"].(map[string]any)
	if !ok {
		t.Fatalf("undo = %T, want map[string]any", config["undo"])
	}
	if undo["max_history"] != 25 {
		t.Errorf("max_history = %v (%T), want 25", undo["max_history"], undo["max_history"])
	}
	if p := config["script"].(map[string]any)["path"]; p != "~/init.lua" {
		t.Errorf("script.path = %v", p)
	}
}

func TestYAMLLoader_EmptyDocument(t *testing.T) {
	config, err := NewYAMLLoader("").LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("config = %v, want empty map", config)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yml", "undo:\n  max_history: [1\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.yml" {
		t.Errorf("Path = %q", perr.Path)
	}
}

func TestYAMLLoader_LoadMissingFile(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(NewMemFS(), "/none.yaml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}
