// internal/commands/benchmark_run.go
package hazardbench

import (
	"fmt"

	"github.com/factorylens/hazardbench/internal/benchmark"
	"github.com/factorylens/hazardbench/internal/console"
	"github.com/factorylens/hazardbench/internal/judge"
	"github.com/factorylens/hazardbench/internal/providerfactory"
	"github.com/spf13/cobra"
)

// benchmarkRunCmd implements 'benchmark run', which compares both
// assessment strategies across five test images.
var benchmarkRunCmd = &cobra.Command{
	Use:   "run <image1> <image2> <image3> <image4> <image5>",
	Short: "Run the full five-trial benchmark comparing both assessment strategies",
	Long: `Run the full benchmark: each image is assessed by the single-pass
strategy and the two-round strategy, you supply the clarifying answers
and the ground truth, and a judge model scores both results. The
aggregate report is printed and written to the configured output path.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		provider, err := providerfactory.New(cfg)
		if err != nil {
			return err
		}
		defer provider.Close()

		prompter := console.New()
		runner := benchmark.NewRunner(cfg, provider, prompter, prompter, judge.NewLLM(cfg, provider))

		report, err := runner.RunFull(cmd.Context(), args)
		if err != nil {
			return err
		}

		benchmark.PrintSummary(report)

		outPath := cfg.OutputFilePath()
		if err := benchmark.WriteReport(outPath, report); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nDetailed results saved to: %s\n", outPath)
		return nil
	},
}

func init() {
	benchmarkCmd.AddCommand(benchmarkRunCmd)
}
