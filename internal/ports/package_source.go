package ports

import "github.com/dice-group/tentris-license-aggregator/internal/domain"

// PackageSource loads the resolved dependency graph (e.g., a graph file
// exported by an ecosystem tool).
type PackageSource interface {
	LoadPackages(path string) ([]domain.GraphPackage, error)
}
