package usecase

import (
	"testing"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
)

func TestDedupe(t *testing.T) {
	pkgs := []domain.Package{
		{Name: "a", Version: "1", LicenseFiles: []domain.LicenseFile{{Name: "LICENSE", SPDX: strPtr("MIT"), Text: "first"}}},
		{Name: "b", Version: "1"},
		{Name: "a", Version: "1", URL: strPtr("https://a.dev"), LicenseSPDX: strPtr("MIT"), LicenseFiles: []domain.LicenseFile{
			{Name: "LICENSE", SPDX: strPtr("MIT"), Text: "second"},
			{Name: "LICENSE", Text: "unlabelled"},
			{Name: "NOTICE", SPDX: strPtr("MIT"), Text: "notice"},
		}},
		{Name: "a", Version: "2"},
	}

	out := Dedupe(pkgs)
	if len(out) != 3 {
		t.Fatalf("expected 3 packages, got %d", len(out))
	}
	if out[0].Label() != "a 1" || out[1].Label() != "b 1" || out[2].Label() != "a 2" {
		t.Fatalf("unexpected order: %s, %s, %s", out[0].Label(), out[1].Label(), out[2].Label())
	}

	a := out[0]
	if a.URL == nil || *a.URL != "https://a.dev" || a.LicenseSPDX == nil {
		t.Fatalf("expected missing fields filled from duplicate: %+v", a)
	}
	if len(a.LicenseFiles) != 3 {
		t.Fatalf("expected 3 distinct files, got %+v", a.LicenseFiles)
	}
	if a.LicenseFiles[0].Text != "first" {
		t.Fatalf("expected first occurrence kept, got %q", a.LicenseFiles[0].Text)
	}

	if len(pkgs[0].LicenseFiles) != 1 {
		t.Fatalf("input must not be modified")
	}
}
