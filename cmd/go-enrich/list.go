package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "list --name <ontology>",
		Short:   "List the terms of an ontology",
		Example: `  go-enrich list --name maizeGO`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Ontology name (required)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runList(name string) error {
	o, err := openOntology(name)
	if err != nil {
		return err
	}
	defer o.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "TERM\tLOCI\tDESCRIPTION")
	for term, err := range o.IterTerms() {
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", term.ID, len(term.Loci), term.Desc)
	}
	return w.Flush()
}

func newSummaryCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "summary --name <ontology>",
		Short:   "Print a one-line summary of an ontology",
		Example: `  go-enrich summary --name maizeGO`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Ontology name (required)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runSummary(name string) error {
	o, err := openOntology(name)
	if err != nil {
		return err
	}
	defer o.Close()

	fmt.Println(o.Summary())

	universe, err := o.NumDistinctLoci()
	if err != nil {
		return err
	}
	fmt.Printf("Distinct annotated loci: %d\n", universe)
	return nil
}
