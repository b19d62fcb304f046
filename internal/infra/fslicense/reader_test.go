package fslicense

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
)

func TestReadLicense(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "LICENSE")
	if err := os.WriteFile(path, []byte("MIT License\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	text, err := NewReader().ReadLicense(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "MIT License\n" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestReadLicense_Errors(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "LICENSE.bin")
	if err := os.WriteFile(bin, []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := NewReader()
	if _, err := r.ReadLicense(filepath.Join(dir, "missing")); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if _, err := r.ReadLicense(bin); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}
