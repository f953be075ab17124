// Package main provides the go-enrich command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "go-enrich",
		Short:   "Term enrichment analysis over locus ontologies",
		Long:    "go-enrich stores ontologies of terms and their genomic loci and tests locus lists for statistically over-represented terms.",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			return initLogger()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().String("data-dir", "", "Directory holding ontology databases (default: ~/.go-enrich)")
	viper.BindPFlag("data_dir", root.PersistentFlags().Lookup("data-dir"))

	root.AddCommand(newCreateCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newEnrichCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// initConfig wires viper to ~/.go-enrich.yaml and defaults.
func initConfig() {
	viper.SetConfigName(".go-enrich")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetDefault("data_dir", filepath.Join(home, ".go-enrich"))
	} else {
		viper.SetDefault("data_dir", ".go-enrich")
	}
	viper.SetDefault("enrich.pval_cutoff", 0.05)
	viper.SetDefault("enrich.max_term_size", 300)
	viper.SetEnvPrefix("GO_ENRICH")
	viper.AutomaticEnv()

	// Missing config file is fine; defaults apply
	_ = viper.ReadInConfig()
}

func initLogger() error {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}

func dataDir() string {
	return viper.GetString("data_dir")
}
