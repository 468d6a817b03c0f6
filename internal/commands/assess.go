// internal/commands/assess.go
package hazardbench

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/factorylens/hazardbench/internal/benchmark"
	"github.com/factorylens/hazardbench/internal/console"
	"github.com/factorylens/hazardbench/internal/hazard"
	"github.com/factorylens/hazardbench/internal/providerfactory"
	"github.com/factorylens/hazardbench/internal/util"
	"github.com/spf13/cobra"
)

// assessCmd implements 'assess', a one-off hazard assessment of a single
// factory image outside the benchmark.
var assessCmd = &cobra.Command{
	Use:   "assess <image>",
	Short: "Assess a single factory image for safety hazards",
	Long: `Assess a single factory image. By default the single-pass strategy
is used: the model either auto-fills a hazard report or, when its
confidence is low, asks one clarifying question. With --two-round the
model always asks a clarifying question, you answer it, and the final
report incorporates your answer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		imagePath := args[0]

		twoRound, _ := cmd.Flags().GetBool("two-round")
		savePath, _ := cmd.Flags().GetString("save")

		provider, err := providerfactory.New(cfg)
		if err != nil {
			return err
		}
		defer provider.Close()

		prompter := console.New()
		runner := benchmark.NewRunner(cfg, provider, prompter, prompter, nil)

		var result hazard.Assessment
		if twoRound {
			outcome, err := runner.RunSingleTwoRound(cmd.Context(), imagePath)
			if err != nil {
				return err
			}
			benchmark.PrintTwoRoundOutcome(outcome.Record, outcome.FollowUpQuestion, outcome.Answer)
			result = hazard.Assessment{Mode: hazard.ModeAutoFill, Record: outcome.Record, FollowUpQuestion: outcome.FollowUpQuestion}
			if outcome.Record.Confidence == hazard.ConfidenceError {
				result.Mode = hazard.ModeError
			}
		} else {
			assessment, err := runner.RunSingle(cmd.Context(), imagePath)
			if err != nil {
				return err
			}
			benchmark.PrintAssessment(assessment)
			result = assessment
		}

		if savePath == "" {
			base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
			savePath = filepath.Join("hazardData", "assessments", util.Slugify(base)+".json")
		}
		if err := benchmark.WriteAssessment(savePath, imagePath, result); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nAssessment saved to: %s\n", savePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().Bool("two-round", false, "use the two-round strategy (always asks one clarifying question)")
	assessCmd.Flags().String("save", "", "path for the assessment JSON (defaults under hazardData/assessments/)")
}
