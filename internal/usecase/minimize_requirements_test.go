package usecase

import (
	"errors"
	"testing"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/spdx"
)

func TestMinimizeRequirements_PrunesFiles(t *testing.T) {
	pkgs := []domain.Package{
		{Name: "dual", Version: "1", LicenseSPDX: strPtr("MIT OR Apache-2.0"), LicenseFiles: []domain.LicenseFile{
			{Name: "LICENSE-MIT", SPDX: strPtr("MIT")},
			{Name: "LICENSE-APACHE", SPDX: strPtr("Apache-2.0")},
			{Name: "NOTICE"},
		}},
		{Name: "unknown", Version: "1", LicenseFiles: []domain.LicenseFile{
			{Name: "COPYING", SPDX: strPtr("GPL-3.0-only")},
		}},
	}

	out, err := NewMinimizeRequirements(mustPolicy("MIT", "Apache-2.0")).Execute(pkgs)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	// Apache-2.0 sorts before MIT, so it wins the tie between singletons.
	files := out[0].LicenseFiles
	if len(files) != 2 || files[0].Name != "LICENSE-APACHE" || files[1].Name != "NOTICE" {
		t.Fatalf("unexpected kept files %+v", files)
	}
	if len(out[1].LicenseFiles) != 1 {
		t.Fatalf("package without license_spdx must be untouched")
	}
	if len(pkgs[0].LicenseFiles) != 3 {
		t.Fatalf("input must not be modified")
	}
}

func TestMinimizeRequirements_KeptFilesAreChosen(t *testing.T) {
	pkgs := []domain.Package{
		{Name: "p", Version: "1", LicenseSPDX: strPtr("MIT AND (Zlib OR ISC)"), LicenseFiles: []domain.LicenseFile{
			{Name: "a", SPDX: strPtr("MIT")},
			{Name: "b", SPDX: strPtr("Zlib")},
			{Name: "c", SPDX: strPtr("ISC")},
		}},
	}
	policy := mustPolicy("MIT", "Zlib")

	out, err := NewMinimizeRequirements(policy).Execute(pkgs)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	for _, f := range out[0].LicenseFiles {
		r, err := spdx.ParseRequirement(*f.SPDX)
		if err != nil || !policy.Accepts(r) {
			t.Fatalf("kept file %s with unaccepted license %s", f.Name, *f.SPDX)
		}
	}
	if len(out[0].LicenseFiles) != 2 {
		t.Fatalf("expected MIT and Zlib files, got %+v", out[0].LicenseFiles)
	}
}

func TestMinimizeRequirements_JoinsPerPackageErrors(t *testing.T) {
	pkgs := []domain.Package{
		{Name: "bad", Version: "1", LicenseSPDX: strPtr("(MIT")},
		{Name: "strict", Version: "1", LicenseSPDX: strPtr("MIT AND Apache-2.0"), LicenseFiles: []domain.LicenseFile{{Name: "L", SPDX: strPtr("Apache-2.0")}}},
		{Name: "fine", Version: "1", LicenseSPDX: strPtr("MIT OR GPL-2.0-only"), LicenseFiles: []domain.LicenseFile{
			{Name: "M", SPDX: strPtr("MIT")},
			{Name: "G", SPDX: strPtr("GPL-2.0-only")},
		}},
	}

	out, err := NewMinimizeRequirements(mustPolicy("MIT")).Execute(pkgs)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindMalformedExpression) {
		t.Fatalf("expected malformed expression in %v", err)
	}
	if !domain.IsKind(err, domain.KindUnsatisfiable) {
		t.Fatalf("expected unsatisfiable in %v", err)
	}
	if !errors.Is(err, spdx.ErrUnsatisfiable) || !errors.Is(err, spdx.ErrMalformedExpression) {
		t.Fatalf("expected sentinels reachable, got %v", err)
	}

	if len(out) != 3 {
		t.Fatalf("expected all packages returned, got %d", len(out))
	}
	if len(out[1].LicenseFiles) != 1 {
		t.Fatalf("failed package must be left unchanged")
	}
	if len(out[2].LicenseFiles) != 1 || out[2].LicenseFiles[0].Name != "M" {
		t.Fatalf("other packages must still be minimized, got %+v", out[2].LicenseFiles)
	}
}

func TestMinimizeRequirements_IdsBeyondCommonLicenses(t *testing.T) {
	if _, err := spdx.NewPolicy("MIT", "blessing"); err != nil {
		t.Fatalf("NewPolicy with blessing: %v", err)
	}

	pkgs := []domain.Package{
		{Name: "sqlite", Version: "3.45", LicenseSPDX: strPtr("blessing OR MIT"), LicenseFiles: []domain.LicenseFile{
			{Name: "LICENSE.md", SPDX: strPtr("blessing")},
			{Name: "LICENSE-MIT", SPDX: strPtr("MIT")},
		}},
	}

	out, err := NewMinimizeRequirements(mustPolicy("MIT")).Execute(pkgs)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	files := out[0].LicenseFiles
	if len(files) != 1 || files[0].Name != "LICENSE-MIT" {
		t.Fatalf("expected only LICENSE-MIT to be kept, got %+v", files)
	}
}
