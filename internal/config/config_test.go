package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "wire.yaml", "schema: schemas/**/*.yaml\ntype: acme.Invoice\noutput: json\nno_color: true\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Schema == nil || *cfg.Schema != "schemas/**/*.yaml" {
		t.Fatalf("expected schema glob, got %#v", cfg.Schema)
	}
	if cfg.Type == nil || *cfg.Type != "acme.Invoice" {
		t.Fatalf("expected type, got %#v", cfg.Type)
	}
	if cfg.Output == nil || *cfg.Output != "json" {
		t.Fatalf("expected output=json, got %#v", cfg.Output)
	}
	if cfg.NoColor == nil || !*cfg.NoColor {
		t.Fatal("expected no_color=true")
	}
	if cfg.Pretty != nil {
		t.Fatal("unset fields must stay nil")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "wire.yaml", "type: acme.Second\n")
	writeTemp(t, dir, ".wire.yaml", "type: acme.First\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Type == nil || *cfg.Type != "acme.First" {
		t.Fatalf("expected type from .wire.yaml, got %#v", cfg.Type)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLocal(dir); err == nil {
		t.Fatal("expected error when no local config exists")
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	sub := filepath.Join(dir, "wire")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeTemp(t, sub, "config.yml", "pretty: true\n")
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Pretty == nil || !*cfg.Pretty {
		t.Fatal("expected pretty=true from global config")
	}
}

func TestLoadFile_BadYAML(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "wire.yaml", "schema: [unclosed\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected parse error")
	}
}
