package ports

import "github.com/dice-group/tentris-license-aggregator/internal/domain"

// ManifestLoader loads an auxiliary third-party manifest of ready-made
// package records.
type ManifestLoader interface {
	LoadManifest(path string) ([]domain.Package, error)
}
