// internal/benchmark/display.go
package benchmark

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/factorylens/hazardbench/internal/hazard"
)

var (
	winnerText = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorText  = color.New(color.FgRed).SprintFunc()
	headerText = color.New(color.FgCyan).SprintFunc()
)

// PrintSummary renders the final benchmark results for the terminal.
func PrintSummary(report *hazard.Report) {
	s := report.Summary

	fmt.Println()
	fmt.Println(headerText(strings.Repeat("=", 60)))
	fmt.Println(headerText("FINAL BENCHMARK RESULTS"))
	fmt.Println(headerText(strings.Repeat("=", 60)))

	fmt.Printf("\nCompleted trials: %d\n", s.TotalTests)
	fmt.Println("\nAVERAGE ACCURACY:")
	fmt.Printf("  Single-pass: %.1f%%\n", s.SinglePassAverage)
	fmt.Printf("  Two-round:   %.1f%%\n", s.TwoRoundAverage)

	fmt.Println("\nINDIVIDUAL TEST SCORES:")
	for i := range s.SinglePassScores {
		fmt.Printf("  Test %d: single-pass=%d%% | two-round=%d%%\n",
			i+1, s.SinglePassScores[i], s.TwoRoundScores[i])
	}

	fmt.Println()
	switch s.Winner {
	case hazard.WinnerSinglePass:
		fmt.Printf("%s (advantage: %.1f points)\n",
			winnerText("OVERALL WINNER: single-pass"), s.SinglePassAverage-s.TwoRoundAverage)
	case hazard.WinnerTwoRound:
		fmt.Printf("%s (advantage: %.1f points)\n",
			winnerText("OVERALL WINNER: two-round"), s.TwoRoundAverage-s.SinglePassAverage)
	default:
		fmt.Println("RESULT: tie")
	}
}

// PrintAssessment renders one ad-hoc assessment for the terminal.
func PrintAssessment(a hazard.Assessment) {
	fmt.Println()
	fmt.Println(headerText(strings.Repeat("=", 50)))
	fmt.Println(headerText("HAZARD DETECTION ANALYSIS SUMMARY"))
	fmt.Println(headerText(strings.Repeat("=", 50)))

	fmt.Printf("Mode:       %s\n", strings.ToUpper(string(a.Mode)))
	fmt.Printf("Confidence: %s\n", strings.ToUpper(string(a.Record.Confidence)))

	switch a.Mode {
	case hazard.ModeAutoFill:
		fmt.Printf("\nISSUE:    %s\n", a.Record.Issue)
		fmt.Printf("LOCATION: %s\n", a.Record.Location)
		fmt.Printf("NOTE:     %s\n", a.Record.Note)
		if a.Record.CAPA != "" {
			fmt.Printf("CAPA:     %s\n", a.Record.CAPA)
		}
		if len(a.Boxes) > 0 {
			fmt.Printf("\nBOUNDING BOXES (%d detected):\n", len(a.Boxes))
			for i, box := range a.Boxes {
				fmt.Printf("  %d. %s - x:%.0f%%, y:%.0f%%, w:%.0f%%, h:%.0f%%\n",
					i+1, box.Label, box.X, box.Y, box.Width, box.Height)
			}
		}
	case hazard.ModeFollowUp:
		fmt.Printf("\nFOLLOW-UP QUESTION:\n  %s\n", a.FollowUpQuestion)
	default:
		fmt.Printf("\n%s\n", errorText("ERROR: "+a.Record.Error))
	}
}

// PrintTwoRoundOutcome renders one ad-hoc two-round result.
func PrintTwoRoundOutcome(record hazard.HazardRecord, question, answer string) {
	fmt.Println()
	fmt.Println(headerText(strings.Repeat("=", 50)))
	fmt.Println(headerText("TWO-ROUND ANALYSIS SUMMARY"))
	fmt.Println(headerText(strings.Repeat("=", 50)))

	if question != "" {
		fmt.Printf("Question asked: %s\n", question)
		fmt.Printf("Answer given:   %s\n", answer)
	}

	if record.Confidence == hazard.ConfidenceError {
		fmt.Printf("\n%s\n", errorText("ERROR: "+record.Error))
		return
	}

	fmt.Printf("\nISSUE:    %s\n", record.Issue)
	fmt.Printf("LOCATION: %s\n", record.Location)
	fmt.Printf("NOTE:     %s\n", record.Note)
	if record.CAPA != "" {
		fmt.Printf("CAPA:     %s\n", record.CAPA)
	}
	fmt.Printf("Confidence: %s\n", record.Confidence)
}
