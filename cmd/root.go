package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/symcla/symcla/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "symcla",
	Short: "Symbiont classification from protein FASTA files",
	Long:  "Searches genomes against frozen marker profile HMMs, scores them with a frozen regression model, and labels each as free-living, host-associated, or intracellular.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
