package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/spdx"
)

// MinimizeRequirements reduces each package's license expression to the
// smallest accepted set and drops license files for licenses not chosen.
type MinimizeRequirements struct {
	policy spdx.Policy
	log    *slog.Logger
}

func NewMinimizeRequirements(policy spdx.Policy, opts ...Option) *MinimizeRequirements {
	s := applyOptions(opts)
	return &MinimizeRequirements{policy: policy, log: s.log}
}

// Execute returns pruned copies of pkgs. A package that cannot be minimized
// is kept unchanged and its error is joined into the returned error; the
// remaining packages are still processed.
func (uc *MinimizeRequirements) Execute(pkgs []domain.Package) ([]domain.Package, error) {
	out := make([]domain.Package, len(pkgs))
	var errs []error

	for i, p := range pkgs {
		out[i] = p
		if p.LicenseSPDX == nil {
			continue
		}

		chosen, err := uc.minimize(p)
		if err != nil {
			uc.log.Error("minimize.failed", "package", p.Label(), "license", *p.LicenseSPDX, "err", err)
			errs = append(errs, err)
			continue
		}

		kept := make([]domain.LicenseFile, 0, len(p.LicenseFiles))
		for _, f := range p.LicenseFiles {
			if f.SPDX == nil || slices.Contains(chosen, *f.SPDX) {
				kept = append(kept, f)
			}
		}
		if dropped := len(p.LicenseFiles) - len(kept); dropped > 0 {
			uc.log.Debug("minimize.pruned", "package", p.Label(), "chosen", chosen, "dropped", dropped)
		}
		out[i].LicenseFiles = kept
	}

	return out, errors.Join(errs...)
}

// minimize returns the canonical strings of the chosen requirements.
func (uc *MinimizeRequirements) minimize(p domain.Package) ([]string, error) {
	expr, err := spdx.ParseMode(*p.LicenseSPDX, spdx.Lax)
	if err != nil {
		return nil, &domain.OpError{
			Op:      "minimize.parse",
			Kind:    domain.KindMalformedExpression,
			Package: p.Label(),
			Err:     err,
		}
	}

	reqs, err := expr.MinimizedRequirements(uc.policy)
	if err != nil {
		return nil, &domain.OpError{
			Op:      "minimize.requirements",
			Kind:    domain.KindUnsatisfiable,
			Package: p.Label(),
			Err:     fmt.Errorf("unable to minimize requirements of %q: %w", *p.LicenseSPDX, err),
		}
	}

	chosen := make([]string, len(reqs))
	for i, r := range reqs {
		chosen[i] = r.String()
	}
	return chosen, nil
}
