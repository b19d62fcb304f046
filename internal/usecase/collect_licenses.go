package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
	"github.com/dice-group/tentris-license-aggregator/internal/spdx"
)

// CollectLicenses turns graph packages into BOM records, reading every
// declared license file.
type CollectLicenses struct {
	reader  ports.LicenseReader
	exclude *Excluder
	log     *slog.Logger
}

func NewCollectLicenses(reader ports.LicenseReader, exclude *Excluder, opts ...Option) *CollectLicenses {
	s := applyOptions(opts)
	return &CollectLicenses{reader: reader, exclude: exclude, log: s.log}
}

func (uc *CollectLicenses) Execute(ctx context.Context, graph []domain.GraphPackage, report *domain.Report) ([]domain.Package, error) {
	out := make([]domain.Package, 0, len(graph))

	for _, gp := range graph {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if uc.exclude.Excluded(gp.Name) {
			uc.log.Debug("collect.excluded", "package", gp.Label())
			continue
		}

		label := gp.Label()
		var spdxText *string

		switch gp.License.Kind {
		case domain.LicenseExpr:
			s := gp.License.Expr.String()
			spdxText = &s
			if n := gp.License.Expr.Len(); n != len(gp.LicenseFiles) {
				uc.warn(report, domain.DiagFileMismatch, label,
					fmt.Sprintf("license %q names %d licenses but %d license files were found", s, n, len(gp.LicenseFiles)))
			}
		case domain.LicenseUnknown:
			uc.warn(report, domain.DiagUnknownLicense, label,
				fmt.Sprintf("unknown license %q", gp.License.Raw))
		case domain.LicenseIgnore:
			return nil, &domain.OpError{
				Op:      "collect.license",
				Kind:    domain.KindInternal,
				Package: label,
				Err:     fmt.Errorf("%w: package is marked as ignored", domain.ErrInconsistent),
			}
		default:
			return nil, &domain.OpError{
				Op:      "collect.license",
				Kind:    domain.KindInternal,
				Package: label,
				Err:     fmt.Errorf("%w: license kind %q", domain.ErrInconsistent, gp.License.Kind),
			}
		}

		dir := filepath.Dir(gp.ManifestPath)
		files := make([]domain.LicenseFile, 0, len(gp.LicenseFiles))
		for _, ref := range gp.LicenseFiles {
			path := ref.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}

			text, err := uc.reader.ReadLicense(path)
			if err != nil {
				uc.warn(report, domain.DiagUnreadableFile, label,
					fmt.Sprintf("unable to read license file %s: %v", path, err))
				continue
			}

			var fileSPDX *string
			if ref.License != "" {
				l := spdx.CanonicalRequirement(ref.License)
				fileSPDX = &l
			}
			files = append(files, domain.LicenseFile{
				Name: filepath.Base(path),
				SPDX: fileSPDX,
				Text: text,
			})
		}

		if len(files) == 0 {
			uc.warn(report, domain.DiagNoLicenseFiles, label, "no license files found")
		}

		out = append(out, domain.Package{
			Name:         gp.Name,
			Version:      gp.Version,
			URL:          packageURL(gp),
			LicenseSPDX:  spdxText,
			LicenseFiles: files,
		})
	}

	return out, nil
}

func (uc *CollectLicenses) warn(report *domain.Report, kind domain.DiagnosticKind, pkg, msg string) {
	report.Add(domain.Diagnostic{Kind: kind, Package: pkg, Message: msg})
	uc.log.Warn("collect."+string(kind), "package", pkg, "detail", msg)
}

// packageURL prefers the repository over the homepage.
func packageURL(gp domain.GraphPackage) *string {
	switch {
	case gp.Repository != "":
		u := gp.Repository
		return &u
	case gp.Homepage != "":
		u := gp.Homepage
		return &u
	default:
		return nil
	}
}
