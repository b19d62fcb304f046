package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
	"github.com/dice-group/tentris-license-aggregator/internal/usecase/metadata"
)

// CollectThirdParty loads the auxiliary manifests that graph packages name
// in their metadata. Excluded packages are searched too.
type CollectThirdParty struct {
	loader ports.ManifestLoader
	path   *metadata.Path
	log    *slog.Logger
}

func NewCollectThirdParty(loader ports.ManifestLoader, metadataPath string, opts ...Option) (*CollectThirdParty, error) {
	p, err := metadata.Compile(metadataPath)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "thirdparty.metadata_path",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err),
		}
	}
	s := applyOptions(opts)
	return &CollectThirdParty{loader: loader, path: p, log: s.log}, nil
}

func (uc *CollectThirdParty) Execute(ctx context.Context, graph []domain.GraphPackage) ([]domain.Package, error) {
	var out []domain.Package

	for _, gp := range graph {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, ok := uc.path.Lookup(gp.Metadata)
		if !ok {
			continue
		}

		manifest := name
		if !filepath.IsAbs(manifest) {
			manifest = filepath.Join(filepath.Dir(gp.ManifestPath), manifest)
		}

		pkgs, err := uc.loader.LoadManifest(manifest)
		if err != nil {
			return nil, fmt.Errorf("third-party manifest of %s: %w", gp.Label(), err)
		}
		uc.log.Debug("thirdparty.loaded", "package", gp.Label(), "manifest", manifest, "packages", len(pkgs))
		out = append(out, pkgs...)
	}

	return out, nil
}
