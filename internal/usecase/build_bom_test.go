package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
)

func newPipeline(t *testing.T, source fakeSource, analyzer *fakeAnalyzer, manifests fakeManifests, accepted ...string) *BuildBOM {
	t.Helper()
	exclude, err := NewExcluder("*tentris*")
	if err != nil {
		t.Fatalf("NewExcluder error: %v", err)
	}
	third, err := NewCollectThirdParty(manifests, "$.licbom.thirdparty")
	if err != nil {
		t.Fatalf("NewCollectThirdParty error: %v", err)
	}
	return NewBuildBOM(
		source,
		NewCollectLicenses(readerFixture(), exclude),
		third,
		NewAugmentLicenses(analyzer, 2, 0.9),
		NewMinimizeRequirements(mustPolicy(accepted...)),
	)
}

func TestBuildBOM_EndToEnd(t *testing.T) {
	graph := graphFixture()
	graph[1].Metadata = metaDoc("thirdparty.json")
	manifests := fakeManifests{
		filepath.Join("/src", "tentris-sys", "thirdparty.json"): {
			{Name: "robin-hood", Version: "3.11.5", LicenseSPDX: strPtr("MIT"), LicenseFiles: []domain.LicenseFile{
				{Name: "LICENSE", Text: "mit text"},
			}},
			{Name: "robin-hood", Version: "3.11.5", LicenseFiles: []domain.LicenseFile{
				{Name: "LICENSE", Text: "mit text"},
			}},
		},
	}
	analyzer := &fakeAnalyzer{results: map[string]domain.Classification{
		"mit text":    {License: "MIT", Score: 1},
		"custom text": {License: "ISC", Score: 0.4},
	}}

	uc := newPipeline(t, fakeSource{pkgs: graph}, analyzer, manifests, "MIT", "ISC")
	pkgs, report, err := uc.Execute(context.Background(), "graph.yaml")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if len(pkgs) != 3 {
		t.Fatalf("expected foo, bar and one robin-hood, got %d", len(pkgs))
	}
	if pkgs[0].Name != "foo" || pkgs[1].Name != "bar" || pkgs[2].Name != "robin-hood" {
		t.Fatalf("unexpected order %s, %s, %s", pkgs[0].Name, pkgs[1].Name, pkgs[2].Name)
	}

	// MIT OR Apache-2.0 under {MIT, ISC} keeps only the MIT file.
	if len(pkgs[0].LicenseFiles) != 1 || *pkgs[0].LicenseFiles[0].SPDX != "MIT" {
		t.Fatalf("unexpected foo files %+v", pkgs[0].LicenseFiles)
	}
	// Unknown license: no minimization, the classified file stays.
	if len(pkgs[1].LicenseFiles) != 1 || *pkgs[1].LicenseFiles[0].SPDX != "ISC" {
		t.Fatalf("unexpected bar files %+v", pkgs[1].LicenseFiles)
	}
	if len(pkgs[2].LicenseFiles) != 1 || *pkgs[2].LicenseFiles[0].SPDX != "MIT" {
		t.Fatalf("unexpected robin-hood files %+v", pkgs[2].LicenseFiles)
	}

	if report.Count(domain.DiagLowConfidence) != 1 {
		t.Fatalf("expected low confidence warning, got %v", report.Diagnostics())
	}
}

func TestBuildBOM_MinimizeFailureStillReturnsPackages(t *testing.T) {
	graph := graphFixture()[:1]
	uc := newPipeline(t, fakeSource{pkgs: graph}, &fakeAnalyzer{}, fakeManifests{}, "BSD-3-Clause")

	pkgs, _, err := uc.Execute(context.Background(), "graph.yaml")
	if !domain.IsKind(err, domain.KindUnsatisfiable) {
		t.Fatalf("expected KindUnsatisfiable, got %v", err)
	}
	if len(pkgs) != 1 || len(pkgs[0].LicenseFiles) != 2 {
		t.Fatalf("expected unpruned package returned, got %+v", pkgs)
	}
}

func TestBuildBOM_SourceError(t *testing.T) {
	uc := newPipeline(t, fakeSource{err: errBoom}, &fakeAnalyzer{}, fakeManifests{}, "MIT")

	pkgs, report, err := uc.Execute(context.Background(), "graph.yaml")
	if err != errBoom {
		t.Fatalf("expected source error, got %v", err)
	}
	if pkgs != nil || report == nil {
		t.Fatalf("unexpected results %v %v", pkgs, report)
	}
}
