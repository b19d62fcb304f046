package usecase

import (
	"context"
	"log/slog"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
)

// BuildBOM runs the whole pipeline: collect, third-party manifests,
// classification, dedupe and minimization.
type BuildBOM struct {
	source     ports.PackageSource
	collect    *CollectLicenses
	thirdParty *CollectThirdParty
	augment    *AugmentLicenses
	minimize   *MinimizeRequirements
	log        *slog.Logger
}

func NewBuildBOM(
	source ports.PackageSource,
	collect *CollectLicenses,
	thirdParty *CollectThirdParty,
	augment *AugmentLicenses,
	minimize *MinimizeRequirements,
	opts ...Option,
) *BuildBOM {
	s := applyOptions(opts)
	return &BuildBOM{
		source:     source,
		collect:    collect,
		thirdParty: thirdParty,
		augment:    augment,
		minimize:   minimize,
		log:        s.log,
	}
}

// Execute returns the packages in graph order followed by third-party
// packages. When only minimization fails, the packages are still returned
// together with the joined per-package errors.
func (uc *BuildBOM) Execute(ctx context.Context, graphPath string) ([]domain.Package, *domain.Report, error) {
	report := &domain.Report{}

	graph, err := uc.source.LoadPackages(graphPath)
	if err != nil {
		return nil, report, err
	}
	uc.log.Debug("bom.graph_loaded", "path", graphPath, "packages", len(graph))

	pkgs, err := uc.collect.Execute(ctx, graph, report)
	if err != nil {
		return nil, report, err
	}

	if uc.thirdParty != nil {
		extra, err := uc.thirdParty.Execute(ctx, graph)
		if err != nil {
			return nil, report, err
		}
		pkgs = append(pkgs, extra...)
	}

	if err := uc.augment.Execute(ctx, pkgs, report); err != nil {
		return nil, report, err
	}

	pkgs = Dedupe(pkgs)

	out, err := uc.minimize.Execute(pkgs)
	uc.log.Debug("bom.done", "packages", len(out), "diagnostics", report.Len())
	return out, report, err
}
