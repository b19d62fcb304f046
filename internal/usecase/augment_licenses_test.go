package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
)

func TestAugmentLicenses_FillsMissingIDs(t *testing.T) {
	analyzer := &fakeAnalyzer{results: map[string]domain.Classification{
		"mit text":   {License: "MIT", Score: 1},
		"fuzzy text": {License: "BSD-3-Clause", Score: 0.5},
	}}
	pkgs := []domain.Package{
		{Name: "a", Version: "1", LicenseFiles: []domain.LicenseFile{
			{Name: "LICENSE", Text: "mit text"},
			{Name: "LICENSE-APACHE", SPDX: strPtr("Apache-2.0"), Text: "apache text"},
		}},
		{Name: "b", Version: "2", LicenseFiles: []domain.LicenseFile{
			{Name: "COPYING", Text: "fuzzy text"},
		}},
	}
	report := &domain.Report{}

	uc := NewAugmentLicenses(analyzer, 4, 0.9)
	if err := uc.Execute(context.Background(), pkgs, report); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if got := *pkgs[0].LicenseFiles[0].SPDX; got != "MIT" {
		t.Fatalf("expected MIT, got %s", got)
	}
	if got := *pkgs[0].LicenseFiles[1].SPDX; got != "Apache-2.0" {
		t.Fatalf("labelled file must not change, got %s", got)
	}
	if got := *pkgs[1].LicenseFiles[0].SPDX; got != "BSD-3-Clause" {
		t.Fatalf("low confidence result must still be applied, got %s", got)
	}
	if analyzer.calls != 2 {
		t.Fatalf("expected 2 classifications, got %d", analyzer.calls)
	}
	if report.Count(domain.DiagLowConfidence) != 1 {
		t.Fatalf("expected 1 low_confidence, got %v", report.Diagnostics())
	}
	if d := report.Diagnostics()[0]; d.Package != "b 2" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestAugmentLicenses_ManyFilesBoundedWorkers(t *testing.T) {
	results := map[string]domain.Classification{}
	var files []domain.LicenseFile
	for i := range 200 {
		text := fmt.Sprintf("text-%d", i)
		results[text] = domain.Classification{License: fmt.Sprintf("LicenseRef-%d", i), Score: 1}
		files = append(files, domain.LicenseFile{Name: text, Text: text})
	}
	pkgs := []domain.Package{{Name: "many", Version: "1", LicenseFiles: files}}

	uc := NewAugmentLicenses(&fakeAnalyzer{results: results}, 3, 0.9)
	if err := uc.Execute(context.Background(), pkgs, nil); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	for i, f := range pkgs[0].LicenseFiles {
		want := fmt.Sprintf("LicenseRef-%d", i)
		if f.SPDX == nil || *f.SPDX != want {
			t.Fatalf("file %d: expected %s, got %v", i, want, f.SPDX)
		}
	}
}

func TestAugmentLicenses_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pkgs := []domain.Package{{Name: "a", Version: "1", LicenseFiles: []domain.LicenseFile{{Name: "L", Text: "x"}}}}
	err := NewAugmentLicenses(&fakeAnalyzer{}, 0, 0.9).Execute(ctx, pkgs, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAugmentLicenses_NothingToDo(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	pkgs := []domain.Package{{Name: "a", Version: "1", LicenseFiles: []domain.LicenseFile{{Name: "L", SPDX: strPtr("MIT")}}}}

	if err := NewAugmentLicenses(analyzer, 2, 0.9).Execute(context.Background(), pkgs, nil); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if analyzer.calls != 0 {
		t.Fatalf("expected no classification, got %d", analyzer.calls)
	}
}
