package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dice-group/tentris-license-aggregator/internal/infra/configfinder"
	"github.com/dice-group/tentris-license-aggregator/internal/infra/fsworkspace"
	"github.com/dice-group/tentris-license-aggregator/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a starter licbom.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			existed := fileExists(filepath.Join(root, configfinder.ConfigFile))

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, force); err != nil {
				return err
			}
			if existed && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists in %s (use --force to overwrite)\n", configfinder.ConfigFile, root)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized licbom in %s\n", root)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Project directory")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing licbom.yaml")
	return c
}
