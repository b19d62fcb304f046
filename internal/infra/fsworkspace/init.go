package fsworkspace

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/infra/configfinder"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
)

const (
	stateDir        = ".licbom"
	gitignoreHeader = "# licbom"
)

// gitignoreEntries keeps licbom's state and interrupted cache writes out of
// version control.
var gitignoreEntries = []string{stateDir + "/", "*.zst.tmp"}

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init writes licbom.yaml and the .licbom state directory under ws.Root.
// An existing licbom.yaml is kept unless force is set.
func (i *Initializer) Init(ws domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(ws.Root)

	dir := filepath.Join(root, stateDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.OpError{Op: "fsworkspace.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	if err := ensureGitignore(root); err != nil {
		return &domain.OpError{Op: "fsworkspace.gitignore", Kind: domain.KindExecution, Path: root, Err: err}
	}

	dst := filepath.Join(root, configfinder.ConfigFile)
	if !force {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}
	if err := os.WriteFile(dst, configTemplate, 0o644); err != nil {
		return &domain.OpError{Op: "fsworkspace.write", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	return nil
}

// ensureGitignore appends whatever licbom entries root/.gitignore lacks.
func ensureGitignore(root string) error {
	path := filepath.Join(root, ".gitignore")

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	present := map[string]bool{}
	sc := bufio.NewScanner(bytes.NewReader(existing))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			present[line] = true
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	var block []string
	if !present[gitignoreHeader] {
		block = append(block, gitignoreHeader)
	}
	added := 0
	for _, e := range gitignoreEntries {
		if !present[e] {
			block = append(block, e)
			added++
		}
	}
	if added == 0 {
		return nil
	}

	var prefix string
	if len(existing) > 0 {
		// Separate our block from the user's entries.
		prefix = "\n"
		if !bytes.HasSuffix(existing, []byte("\n")) {
			prefix = "\n\n"
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(prefix + strings.Join(block, "\n") + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
