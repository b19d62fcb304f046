package thirdparty

import (
	"path/filepath"
	"testing"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
)

func TestLoadManifest(t *testing.T) {
	pkgs, err := NewLoader().LoadManifest(filepath.Join("testdata", "thirdparty.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pkgs) != 3 {
		t.Fatalf("expected 3 packages, got %d", len(pkgs))
	}

	if pkgs[0].LicenseSPDX == nil || *pkgs[0].LicenseSPDX != "AGPL-3.0-only" {
		t.Fatalf("unexpected license_spdx: %v", pkgs[0].LicenseSPDX)
	}
	if pkgs[1].URL != nil || pkgs[1].LicenseSPDX != nil {
		t.Fatalf("expected nulls preserved: %+v", pkgs[1])
	}
	if pkgs[1].LicenseFiles[0].SPDX != nil {
		t.Fatalf("expected unlabelled file")
	}
	if pkgs[2].LicenseFiles == nil || len(pkgs[2].LicenseFiles) != 0 {
		t.Fatalf("expected empty file list, got %#v", pkgs[2].LicenseFiles)
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	l := NewLoader()

	_, err := l.LoadManifest(filepath.Join("testdata", "missing.json"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}

	_, err = l.LoadManifest(filepath.Join("testdata", "invalid.json"))
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestLoadManifest_CanonicalisesFileLicenses(t *testing.T) {
	pkgs, err := NewLoader().LoadManifest(filepath.Join("testdata", "lowercase.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"blessing", "MIT", "Custom-Notice"}
	files := pkgs[0].LicenseFiles
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d", len(want), len(files))
	}
	for i, w := range want {
		if files[i].SPDX == nil || *files[i].SPDX != w {
			t.Fatalf("file %d: expected spdx %q, got %v", i, w, files[i].SPDX)
		}
	}
}
