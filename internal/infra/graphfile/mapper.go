package graphfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/spdx"
)

// MapGraph validates the DTO and converts it to domain packages. A relative
// manifest_path is resolved against the graph file's directory.
func MapGraph(path string, g Graph) ([]domain.GraphPackage, error) {
	base := filepath.Dir(path)
	out := make([]domain.GraphPackage, 0, len(g.Packages))

	for i, p := range g.Packages {
		field := fmt.Sprintf("packages[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			return nil, invalidField(path, field+".name", "package name is required")
		}
		if strings.TrimSpace(p.Version) == "" {
			return nil, invalidField(path, field+".version", "package version is required")
		}
		if strings.TrimSpace(p.ManifestPath) == "" {
			return nil, invalidField(path, field+".manifest_path", "manifest path is required")
		}

		manifest := p.ManifestPath
		if !filepath.IsAbs(manifest) {
			manifest = filepath.Join(base, manifest)
		}

		files := make([]domain.LicenseFileRef, 0, len(p.LicenseFiles))
		for j, f := range p.LicenseFiles {
			if strings.TrimSpace(f.Path) == "" {
				return nil, invalidField(path, fmt.Sprintf("%s.license_files[%d].path", field, j), "path is required")
			}
			files = append(files, domain.LicenseFileRef{
				Path:    f.Path,
				License: strings.TrimSpace(f.License),
			})
		}

		out = append(out, domain.GraphPackage{
			Name:         p.Name,
			Version:      p.Version,
			Repository:   strings.TrimSpace(p.Repository),
			Homepage:     strings.TrimSpace(p.Homepage),
			ManifestPath: manifest,
			License:      MapLicense(p.License, p.Ignore),
			LicenseFiles: files,
			Metadata:     p.Metadata,
		})
	}

	return out, nil
}

// MapLicense interprets a declared license string. Crate metadata is written
// by hand, so the lax grammar applies ("MIT/Apache-2.0").
func MapLicense(raw string, ignore bool) domain.LicenseInfo {
	if ignore {
		return domain.LicenseInfo{Kind: domain.LicenseIgnore, Raw: raw}
	}

	trimmed := strings.TrimSpace(raw)
	switch strings.ToUpper(trimmed) {
	case "", "UNKNOWN", "NOASSERTION", "NONE":
		return domain.LicenseInfo{Kind: domain.LicenseUnknown, Raw: raw}
	}

	expr, err := spdx.ParseMode(trimmed, spdx.Lax)
	if err != nil {
		return domain.LicenseInfo{Kind: domain.LicenseUnknown, Raw: raw}
	}
	return domain.LicenseInfo{Kind: domain.LicenseExpr, Expr: expr, Raw: raw}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "graphfile.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
