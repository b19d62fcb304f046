package thirdparty

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
	"github.com/dice-group/tentris-license-aggregator/internal/spdx"
)

// Loader reads third-party manifests: JSON arrays of finished package
// records for code vendored outside the dependency graph.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

var _ ports.ManifestLoader = (*Loader)(nil)

func (l *Loader) LoadManifest(path string) ([]domain.Package, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "thirdparty.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var pkgs []domain.Package
	if err := json.Unmarshal(b, &pkgs); err != nil {
		return nil, &domain.OpError{
			Op:   "thirdparty.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	for i, p := range pkgs {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Version) == "" {
			return nil, &domain.OpError{
				Op:   "thirdparty.validate",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("entry %d: package_name and package_version are required: %w", i, domain.ErrInvalidConfig),
			}
		}
		if p.LicenseFiles == nil {
			pkgs[i].LicenseFiles = []domain.LicenseFile{}
		}
		for j, f := range p.LicenseFiles {
			if f.SPDX != nil {
				id := spdx.CanonicalRequirement(strings.TrimSpace(*f.SPDX))
				pkgs[i].LicenseFiles[j].SPDX = &id
			}
		}
	}
	return pkgs, nil
}
