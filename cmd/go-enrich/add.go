package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var (
		name        string
		noOverwrite bool
	)

	cmd := &cobra.Command{
		Use:   "add --name <ontology> <annotations.tsv>",
		Short: "Ingest term-locus annotations into an ontology",
		Long: "Load annotations from a tab-separated file (columns: term id, locus id, " +
			"optional term description). Existing terms with the same ids are replaced " +
			"unless --no-overwrite is given, in which case a duplicate id fails the load.",
		Example: `  go-enrich add --name maizeGO go_annotations.tsv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(name, args[0], !noOverwrite)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Ontology name (required)")
	cmd.Flags().BoolVar(&noOverwrite, "no-overwrite", false, "Fail on duplicate term ids instead of replacing")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runAdd(name, path string, overwrite bool) error {
	o, err := openOntology(name)
	if err != nil {
		return err
	}
	defer o.Close()

	n, err := o.LoadTSV(path, overwrite)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d terms into %q\n", n, name)
	return nil
}
