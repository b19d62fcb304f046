package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/spdx"
)

func minimizeCmd() *cobra.Command {
	var accept []string
	var lax bool

	c := &cobra.Command{
		Use:   "minimize EXPR",
		Short: "Print the smallest accepted set of licenses satisfying an SPDX expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject("", overrides{accepted: accept})
			if err != nil {
				return err
			}
			policy, err := spdx.NewPolicy(proj.cfg.Accepted...)
			if err != nil {
				return err
			}

			mode := spdx.Strict
			if lax {
				mode = spdx.Lax
			}
			expr, err := spdx.ParseMode(args[0], mode)
			if err != nil {
				return &domain.OpError{Op: "minimize.parse", Kind: domain.KindMalformedExpression, Err: err}
			}

			reqs, err := expr.MinimizedRequirements(policy)
			if err != nil {
				return &domain.OpError{Op: "minimize.requirements", Kind: domain.KindUnsatisfiable, Err: err}
			}

			out := cmd.OutOrStdout()
			for _, r := range reqs {
				fmt.Fprintln(out, r.String())
			}
			return nil
		},
	}

	c.Flags().StringArrayVar(&accept, "accept", nil, "Accepted license requirement; repeatable, replaces licbom.yaml's list")
	c.Flags().BoolVar(&lax, "lax", false, "Accept lower case operators and \"/\" as OR")
	return c
}
