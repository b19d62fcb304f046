package usecase

import (
	"errors"
	"os"
	"sync"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/spdx"
)

// --- fakes shared by the pipeline tests ---

type fakeSource struct {
	pkgs []domain.GraphPackage
	err  error
}

func (f fakeSource) LoadPackages(_ string) ([]domain.GraphPackage, error) {
	return f.pkgs, f.err
}

// fakeReader serves license texts by path.
type fakeReader map[string]string

func (f fakeReader) ReadLicense(path string) (string, error) {
	text, ok := f[path]
	if !ok {
		return "", &domain.OpError{Op: "fake.read", Kind: domain.KindNotFound, Path: path, Err: os.ErrNotExist}
	}
	return text, nil
}

type fakeManifests map[string][]domain.Package

func (f fakeManifests) LoadManifest(path string) ([]domain.Package, error) {
	pkgs, ok := f[path]
	if !ok {
		return nil, &domain.OpError{Op: "fake.manifest", Kind: domain.KindNotFound, Path: path, Err: os.ErrNotExist}
	}
	out := make([]domain.Package, len(pkgs))
	for i, p := range pkgs {
		p.LicenseFiles = append([]domain.LicenseFile(nil), p.LicenseFiles...)
		out[i] = p
	}
	return out, nil
}

// fakeAnalyzer answers from a text -> result table and counts calls.
type fakeAnalyzer struct {
	mu      sync.Mutex
	results map[string]domain.Classification
	calls   int
}

func (f *fakeAnalyzer) Analyze(text string) domain.Classification {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if res, ok := f.results[text]; ok {
		return res
	}
	return domain.Classification{License: "NOASSERTION", Score: 0}
}

var errBoom = errors.New("boom")

func strPtr(s string) *string { return &s }

func mustExpr(s string) spdx.Expression {
	e, err := spdx.ParseMode(s, spdx.Lax)
	if err != nil {
		panic(err)
	}
	return e
}

func exprLicense(s string) domain.LicenseInfo {
	return domain.LicenseInfo{Kind: domain.LicenseExpr, Expr: mustExpr(s), Raw: s}
}

func mustPolicy(ids ...string) spdx.Policy {
	p, err := spdx.NewPolicy(ids...)
	if err != nil {
		panic(err)
	}
	return p
}
