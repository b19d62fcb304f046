package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dice-group/tentris-license-aggregator/internal/classify"
	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/infra/corpuscache"
)

func corpusCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the reference license corpus",
	}
	c.AddCommand(corpusBuildCmd())
	c.AddCommand(corpusListCmd())
	return c
}

func corpusBuildCmd() *cobra.Command {
	var from string
	var out string
	var version string

	c := &cobra.Command{
		Use:   "build",
		Short: "Compile a directory of <ID>.txt license texts into a cache file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			corpus, err := corpuscache.LoadDir(from)
			if err != nil {
				return err
			}
			if v := strings.TrimSpace(version); v != "" {
				corpus, err = withVersion(corpus, v)
				if err != nil {
					return err
				}
			}
			if err := corpuscache.Save(out, corpus); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "corpus %s: %d license(s) written to %s\n", corpus.Version(), corpus.Len(), out)
			return nil
		},
	}

	c.Flags().StringVar(&from, "from", "", "Directory of <ID>.txt files, e.g. license-list-data/text (required)")
	c.Flags().StringVar(&out, "out", "", "Cache file to write (required)")
	c.Flags().StringVar(&version, "version", "", "Corpus version (defaults to the directory name)")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("out")
	return c
}

func corpusListCmd() *cobra.Command {
	var corpusPath string

	c := &cobra.Command{
		Use:   "list",
		Short: "List the license ids of the active corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			proj, err := loadProject("", overrides{corpus: corpusPath})
			if err != nil {
				return err
			}
			corpus, err := corpuscache.Resolve(proj.cfg.Corpus.Path)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "# corpus %s (%d licenses)\n", corpus.Version(), corpus.Len())
			for _, id := range corpus.IDs() {
				fmt.Fprintln(w, id)
			}
			return nil
		},
	}

	c.Flags().StringVar(&corpusPath, "corpus", "", "License corpus: directory of <ID>.txt files or a cache file")
	return c
}

func withVersion(c *classify.Corpus, version string) (*classify.Corpus, error) {
	texts := make(map[string]string, c.Len())
	for _, id := range c.IDs() {
		texts[id], _ = c.Text(id)
	}
	out, err := classify.NewCorpus(version, texts)
	if err != nil {
		return nil, &domain.OpError{Op: "corpus.version", Kind: domain.KindCorpusUnavailable, Err: err}
	}
	return out, nil
}
