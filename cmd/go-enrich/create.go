package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/go-enrich/internal/ontology"
	"github.com/inodb/go-enrich/internal/refgen"
)

func newCreateCmd() *cobra.Command {
	var (
		name       string
		desc       string
		refgenName string
	)

	cmd := &cobra.Command{
		Use:   "create --name <ontology> --refgen <genome> <loci.tsv>",
		Short: "Create a new, empty ontology",
		Long: "Create an ontology database bound to a reference genome. The loci file " +
			"(columns: id, chrom, start, end, strand) defines the genome used to " +
			"resolve locus ids; its path is recorded so later commands can reload it.",
		Example: `  go-enrich create --name maizeGO --desc "maize gene ontology" --refgen Zm5bFGS loci.tsv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(name, desc, refgenName, args[0])
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Ontology name (required)")
	cmd.Flags().StringVar(&desc, "desc", "", "Ontology description")
	cmd.Flags().StringVar(&refgenName, "refgen", "", "Reference genome name (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("refgen")

	return cmd
}

func runCreate(name, desc, refgenName, lociPath string) error {
	r := refgen.New(refgenName)
	if err := r.LoadTSV(lociPath); err != nil {
		return err
	}
	logger.Debug("loaded reference genome",
		zap.String("refgen", refgenName),
		zap.Int("loci", r.Size()))

	o, err := ontology.Create(dataDir(), name, desc, r)
	if err != nil {
		return err
	}
	defer o.Close()

	absLoci, err := filepath.Abs(lociPath)
	if err != nil {
		absLoci = lociPath
	}
	if err := o.Store().SetGlobal("refgen_loci", absLoci); err != nil {
		return err
	}

	fmt.Printf("Created ontology %q for %s (%d loci) in %s\n",
		name, refgenName, r.Size(), dataDir())
	return nil
}
