// internal/console/console.go
// Package console collects the human input a benchmark run needs: the
// clarifying answer for a two-round assessment and the ground-truth
// reference assessment. It is the only interactive surface; everything
// upstream depends on interfaces so tests can script these exchanges.
package console

import (
	"fmt"
	"path/filepath"

	"github.com/manifoldco/promptui"

	"github.com/factorylens/hazardbench/internal/hazard"
)

// Prompter reads answers from the terminal. It satisfies both
// assess.AnswerSource and benchmark.GroundTruthSource.
type Prompter struct{}

// New returns a terminal-backed prompter.
func New() *Prompter {
	return &Prompter{}
}

// Answer shows the model's follow-up question and blocks until the
// operator types an answer.
func (p *Prompter) Answer(question string) (string, error) {
	fmt.Printf("\nFollow-up question: %s\n", question)
	prompt := promptui.Prompt{Label: "Your answer"}
	return prompt.Run()
}

// GroundTruth collects the authoritative reference assessment for one
// image, field by field.
func (p *Prompter) GroundTruth(imagePath string) (hazard.GroundTruth, error) {
	fmt.Printf("\nGround truth for %s: enter the actual correct assessment.\n", filepath.Base(imagePath))

	issue, err := (&promptui.Prompt{Label: "Actual issue/hazard"}).Run()
	if err != nil {
		return hazard.GroundTruth{}, err
	}
	location, err := (&promptui.Prompt{Label: "Actual location"}).Run()
	if err != nil {
		return hazard.GroundTruth{}, err
	}
	note, err := (&promptui.Prompt{Label: "Actual notes"}).Run()
	if err != nil {
		return hazard.GroundTruth{}, err
	}

	return hazard.GroundTruth{
		ActualIssue:    issue,
		ActualLocation: location,
		ActualNote:     note,
	}, nil
}
