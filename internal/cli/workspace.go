package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/infra/configfinder"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
)

// projectCtx is the merged configuration of one invocation.
type projectCtx struct {
	root string
	// found is false when no licbom.yaml exists and defaults are in use.
	found bool
	cfg   domain.Config
}

// overrides carries command line values that win over file and environment.
type overrides struct {
	accepted []string
	corpus   string
	workers  int
}

// loadProject resolves the project root, then merges defaults, licbom.yaml,
// .env and LICBOM_* variables, and flags, in that order.
func loadProject(workspaceFlag string, ov overrides) (*projectCtx, error) {
	root, found, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultConfig()
	if found {
		cfg, err = configfinder.LoadConfig(root)
		if err != nil {
			return nil, err
		}
	}

	cfg, err = configfinder.ApplyEnv(cfg, root)
	if err != nil {
		return nil, err
	}

	if len(ov.accepted) > 0 {
		cfg.Accepted = ov.accepted
	}
	if strings.TrimSpace(ov.corpus) != "" {
		cfg.Corpus.Path = ov.corpus
	}
	if ov.workers > 0 {
		cfg.Workers = ov.workers
	}

	if err := configfinder.Validate(cfg); err != nil {
		return nil, err
	}
	return &projectCtx{root: root, found: found, cfg: cfg}, nil
}

// resolveWorkspaceRoot returns the directory holding licbom.yaml. Without a
// flag it searches upward from the working directory and falls back to the
// working directory itself.
func resolveWorkspaceRoot(workspaceFlag string) (string, bool, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", false, fmt.Errorf("invalid workspace path: %w", err)
		}
		if !fileExists(filepath.Join(abs, configfinder.ConfigFile)) {
			return "", false, fmt.Errorf("no %s in %q (tip: run `licbom init --path %s`): %w",
				configfinder.ConfigFile, abs, w, domain.ErrNotFound)
		}
		return abs, true, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}

	var locator ports.WorkspaceLocator = configfinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) || errors.Is(err, domain.ErrNotFound) {
			return wd, false, nil
		}
		return "", false, err
	}
	return root, true, nil
}

// stateDir is where licbom keeps its own files inside a project.
func (p *projectCtx) stateDir() string {
	return filepath.Join(p.root, ".licbom")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
