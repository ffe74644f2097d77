package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/symcla/symcla/internal/hmmer"
	"github.com/symcla/symcla/internal/pipeline"
)

var (
	classifyOut      string
	classifyXLSX     bool
	classifyKeepWork bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <input-dir>",
	Short: "Classify a directory of protein FASTA files",
	Long:  "Runs the full pipeline over every .faa/.fa/.fasta file in the input directory and writes per-genome scores and per-feature contributions to the output directory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		searcher := hmmer.NewExecSearcher(cfg.Search.HmmsearchPath)

		p := pipeline.New(cfg, st, searcher)
		result, err := p.Classify(ctx, args[0], classifyOut, pipeline.Options{
			XLSX:     classifyXLSX,
			KeepWork: classifyKeepWork,
		})
		if err != nil {
			return eris.Wrap(err, "classify")
		}

		zap.L().Info("classification complete",
			zap.String("run_id", result.RunID),
			zap.Int("genomes", len(result.Rows)),
		)

		fmt.Fprintln(os.Stdout, result.Report)
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyOut, "out", "o", "", "output directory (required, must not exist)")
	classifyCmd.Flags().BoolVar(&classifyXLSX, "xlsx", false, "also write an Excel workbook")
	classifyCmd.Flags().BoolVar(&classifyKeepWork, "keep-work", false, "retain the working directory after a successful run")
	_ = classifyCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(classifyCmd)
}
