package ports

import "github.com/dice-group/tentris-license-aggregator/internal/domain"

// BOMStore persists the final bill of licenses.
type BOMStore interface {
	Save(path string, pkgs []domain.Package) error
}
