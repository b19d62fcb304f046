package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dice-group/tentris-license-aggregator/internal/infra/fslicense"
)

type classifyResult struct {
	File    string  `json:"file"`
	License string  `json:"license"`
	Score   float64 `json:"score"`
}

func classifyCmd() *cobra.Command {
	var corpusPath string
	var format string

	c := &cobra.Command{
		Use:   "classify FILE...",
		Short: "Identify the license of one or more text files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject("", overrides{corpus: corpusPath})
			if err != nil {
				return err
			}
			cl, err := newClassifier(proj.cfg.Corpus)
			if err != nil {
				return err
			}

			reader := fslicense.NewReader()
			results := make([]classifyResult, 0, len(args))
			for _, path := range args {
				text, err := reader.ReadLicense(path)
				if err != nil {
					return err
				}
				res := cl.Analyze(text)
				results = append(results, classifyResult{File: path, License: res.License, Score: res.Score})
			}

			return printClassification(cmd.OutOrStdout(), results, format, proj.cfg.Corpus.MinConfidence)
		},
	}

	c.Flags().StringVar(&corpusPath, "corpus", "", "License corpus: directory of <ID>.txt files or a cache file")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printClassification(w io.Writer, results []classifyResult, format string, minConfidence float64) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "pretty", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tLICENSE\tSCORE\t")
		for _, r := range results {
			mark := ""
			if r.Score < minConfidence {
				mark = "low confidence"
			}
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%s\n", r.File, r.License, r.Score, mark)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q (use pretty or json)", format)
	}
}
