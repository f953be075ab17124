package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/go-enrich/internal/enrich"
)

func newEnrichCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "enrich --name <ontology> [<loci.txt> | <locus-id>...]",
		Short: "Test a locus list for over-represented terms",
		Long: "Run a hypergeometric over-representation test for every ontology term " +
			"sharing at least one locus with the input. Input is either a file with " +
			"one locus id per line or locus ids given as arguments. Results are " +
			"written as TSV: term id, p-value, overlap, term size, description.",
		Example: `  go-enrich enrich --name maizeGO candidate_loci.txt
  go-enrich enrich --name maizeGO --cutoff 0.01 GRMZM2G004528 GRMZM2G008247`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrich(name, enrichOptions(cmd.Flags()), args)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Ontology name (required)")
	cmd.Flags().Float64("cutoff", 0.05, "P-value cutoff (default from config)")
	cmd.Flags().Int("max-term-size", 300, "Skip terms with more loci than this (default from config)")
	cmd.MarkFlagRequired("name")

	return cmd
}

// enrichOptions fills unset flags from the config. An explicitly given
// value is passed through untouched, zero included, so the engine can
// reject it rather than a config default masking the mistake.
func enrichOptions(flags *pflag.FlagSet) enrich.Options {
	cutoff, _ := flags.GetFloat64("cutoff")
	if !flags.Changed("cutoff") {
		cutoff = viper.GetFloat64("enrich.pval_cutoff")
	}
	maxTermSize, _ := flags.GetInt("max-term-size")
	if !flags.Changed("max-term-size") {
		maxTermSize = viper.GetInt("enrich.max_term_size")
	}
	return enrich.Options{PValCutoff: cutoff, MaxTermSize: maxTermSize}
}

func runEnrich(name string, opts enrich.Options, args []string) error {
	ids, err := readLocusIDs(args)
	if err != nil {
		return err
	}

	o, err := openOntology(name)
	if err != nil {
		return err
	}
	defer o.Close()

	loci := o.Refgen().FromIDs(ids)
	if dropped := len(ids) - len(loci); dropped > 0 {
		logger.Warn("dropped locus ids not in the reference genome",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(loci)))
	}

	engine := enrich.NewEngine()
	engine.SetLogger(logger)

	results, err := engine.Enrich(o, loci, opts)
	if err != nil {
		return err
	}

	fmt.Println("term\tpval\toverlap\tsize\tdescription")
	sample := make(map[string]bool, len(loci))
	for _, l := range loci {
		sample[l.ID] = true
	}
	for _, term := range results {
		overlap := 0
		for _, l := range term.Loci {
			if sample[l.ID] {
				overlap++
			}
		}
		fmt.Printf("%s\t%.4g\t%d\t%d\t%s\n",
			term.ID, term.Attrs["pval"], overlap, len(term.Loci), term.Desc)
	}
	logger.Info("enrichment complete",
		zap.Int("significant", len(results)),
		zap.Float64("cutoff", opts.PValCutoff))
	return nil
}

// readLocusIDs reads locus ids from a single file argument (one id per
// line, # comments allowed) or treats the arguments themselves as ids.
func readLocusIDs(args []string) ([]string, error) {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			return readLocusIDFile(args[0])
		}
	}
	return args, nil
}

func readLocusIDFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open locus list: %w", err)
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Allow either bare ids or the first column of a wider TSV
		ids = append(ids, strings.Split(line, "\t")[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read locus list: %w", err)
	}
	return ids, nil
}
