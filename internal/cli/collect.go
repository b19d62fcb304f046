package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dice-group/tentris-license-aggregator/internal/classify"
	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/infra/bomstore"
	"github.com/dice-group/tentris-license-aggregator/internal/infra/corpuscache"
	"github.com/dice-group/tentris-license-aggregator/internal/infra/fslicense"
	"github.com/dice-group/tentris-license-aggregator/internal/infra/graphfile"
	"github.com/dice-group/tentris-license-aggregator/internal/infra/logger"
	"github.com/dice-group/tentris-license-aggregator/internal/infra/thirdparty"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
	"github.com/dice-group/tentris-license-aggregator/internal/spdx"
	"github.com/dice-group/tentris-license-aggregator/internal/usecase"
)

func collectCmd() *cobra.Command {
	var workspace string
	var graph string
	var accept []string
	var corpusPath string
	var output string
	var workers int
	var keepGoing bool
	var strict bool

	c := &cobra.Command{
		Use:   "collect",
		Short: "Build the bill of licenses for a dependency graph",
		RunE: func(cmd *cobra.Command, _ []string) error {
			proj, err := loadProject(workspace, overrides{accepted: accept, corpus: corpusPath, workers: workers})
			if err != nil {
				return err
			}
			log := logger.L()

			analyzer, err := newClassifier(proj.cfg.Corpus)
			if err != nil {
				return err
			}
			policy, err := spdx.NewPolicy(proj.cfg.Accepted...)
			if err != nil {
				return err
			}
			exclude, err := usecase.NewExcluder(proj.cfg.Exclude...)
			if err != nil {
				return err
			}
			third, err := usecase.NewCollectThirdParty(thirdparty.NewLoader(), proj.cfg.ThirdParty.MetadataPath, usecase.WithLogger(log))
			if err != nil {
				return err
			}

			uc := usecase.NewBuildBOM(
				graphfile.NewLoader(),
				usecase.NewCollectLicenses(fslicense.NewReader(), exclude, usecase.WithLogger(log)),
				third,
				usecase.NewAugmentLicenses(analyzer, proj.cfg.Workers, proj.cfg.Corpus.MinConfidence, usecase.WithLogger(log)),
				usecase.NewMinimizeRequirements(policy, usecase.WithLogger(log)),
				usecase.WithLogger(log),
			)

			pkgs, report, runErr := uc.Execute(cmd.Context(), graph)
			if runErr != nil && (!keepGoing || pkgs == nil) {
				return runErr
			}

			if err := writeBOM(cmd, proj, output, pkgs); err != nil {
				return err
			}

			if runErr != nil {
				return runErr
			}
			if strict && report.Len() > 0 {
				return fmt.Errorf("%d diagnostic(s) recorded and --strict is set", report.Len())
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Project root holding licbom.yaml (optional; autodetected if omitted)")
	c.Flags().StringVarP(&graph, "graph", "g", "", "Dependency graph file, JSON or YAML (required)")
	c.Flags().StringArrayVar(&accept, "accept", nil, "Accepted license requirement; repeatable, replaces licbom.yaml's list")
	c.Flags().StringVar(&corpusPath, "corpus", "", "License corpus: directory of <ID>.txt files or a cache file")
	c.Flags().StringVarP(&output, "output", "o", "", "Write the JSON to this file instead of stdout")
	c.Flags().IntVar(&workers, "workers", 0, "Parallel classifications (defaults to licbom.yaml)")
	c.Flags().BoolVar(&keepGoing, "keep-going", false, "Write the output even if some packages cannot be minimized")
	c.Flags().BoolVar(&strict, "strict", false, "Fail when any diagnostic was recorded")

	_ = c.MarkFlagRequired("graph")
	return c
}

func newClassifier(cfg domain.CorpusConfig) (*classify.Classifier, error) {
	corpus, err := corpuscache.Resolve(cfg.Path)
	if err != nil {
		return nil, err
	}
	cl, err := classify.New(corpus, classify.WithCacheSize(cfg.CacheSize))
	if err != nil {
		return nil, &domain.OpError{Op: "classify.new", Kind: domain.KindCorpusUnavailable, Path: cfg.Path, Err: err}
	}
	logger.L().Debug("corpus.loaded", "version", corpus.Version(), "licenses", corpus.Len())
	return cl, nil
}

func writeBOM(cmd *cobra.Command, proj *projectCtx, output string, pkgs []domain.Package) error {
	if strings.TrimSpace(output) == "" {
		return bomstore.Encode(cmd.OutOrStdout(), pkgs)
	}

	var opts []bomstore.Option
	if proj.found {
		opts = append(opts, bomstore.WithIndex(filepath.Join(proj.stateDir(), "history.jsonl")))
	}
	var store ports.BOMStore = bomstore.NewJSONStore(opts...)
	if err := store.Save(output, pkgs); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d package(s) to %s\n", len(pkgs), output)
	return nil
}
