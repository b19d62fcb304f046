package usecase

import "github.com/dice-group/tentris-license-aggregator/internal/domain"

type fileKey struct {
	name    string
	spdx    string
	hasSPDX bool
}

// Dedupe merges packages with the same name and version. The merged record
// takes the position of the first occurrence; its missing URL or license is
// taken from later ones, and license files are unioned by name and SPDX id.
func Dedupe(pkgs []domain.Package) []domain.Package {
	out := make([]domain.Package, 0, len(pkgs))
	index := map[[2]string]int{}
	var seen []map[fileKey]bool

	for _, p := range pkgs {
		key := [2]string{p.Name, p.Version}
		i, dup := index[key]
		if !dup {
			i = len(out)
			index[key] = i
			seen = append(seen, map[fileKey]bool{})
			merged := p
			merged.LicenseFiles = make([]domain.LicenseFile, 0, len(p.LicenseFiles))
			out = append(out, merged)
		} else {
			if out[i].URL == nil {
				out[i].URL = p.URL
			}
			if out[i].LicenseSPDX == nil {
				out[i].LicenseSPDX = p.LicenseSPDX
			}
		}

		for _, f := range p.LicenseFiles {
			k := fileKey{name: f.Name}
			if f.SPDX != nil {
				k.spdx, k.hasSPDX = *f.SPDX, true
			}
			if seen[i][k] {
				continue
			}
			seen[i][k] = true
			out[i].LicenseFiles = append(out[i].LicenseFiles, f)
		}
	}
	return out
}
