package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
)

// AugmentLicenses fills in the SPDX id of every license file that has none
// by classifying its text.
type AugmentLicenses struct {
	analyzer      ports.LicenseAnalyzer
	workers       int
	minConfidence float64
	log           *slog.Logger
}

func NewAugmentLicenses(analyzer ports.LicenseAnalyzer, workers int, minConfidence float64, opts ...Option) *AugmentLicenses {
	if workers < 1 {
		workers = 1
	}
	s := applyOptions(opts)
	return &AugmentLicenses{
		analyzer:      analyzer,
		workers:       workers,
		minConfidence: minConfidence,
		log:           s.log,
	}
}

type fileSlot struct {
	pkg, file int
}

// Execute updates pkgs in place. Each file is written by exactly one worker.
func (uc *AugmentLicenses) Execute(ctx context.Context, pkgs []domain.Package, report *domain.Report) error {
	var slots []fileSlot
	for i := range pkgs {
		for j := range pkgs[i].LicenseFiles {
			if pkgs[i].LicenseFiles[j].SPDX == nil {
				slots = append(slots, fileSlot{pkg: i, file: j})
			}
		}
	}
	if len(slots) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)

	for _, slot := range slots {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := &pkgs[slot.pkg]
			f := &p.LicenseFiles[slot.file]

			res := uc.analyzer.Analyze(f.Text)
			if res.Score < uc.minConfidence {
				msg := fmt.Sprintf("low confidence %.3f classifying %s as %s", res.Score, f.Name, res.License)
				report.Add(domain.Diagnostic{Kind: domain.DiagLowConfidence, Package: p.Label(), Message: msg})
				uc.log.Warn("classify.low_confidence",
					"package", p.Label(), "file", f.Name, "license", res.License, "score", res.Score)
			}
			id := res.License
			f.SPDX = &id
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
