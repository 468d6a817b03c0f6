// internal/benchmark/report.go
package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/factorylens/hazardbench/internal/hazard"
)

// WriteReport writes the benchmark report to a JSON file, once, at the
// end of a run.
func WriteReport(path string, report *hazard.Report) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating results directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating result file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("error writing results: %w", err)
	}

	return nil
}

// singleResult is the persisted document for an ad-hoc single-image run.
type singleResult struct {
	Info struct {
		ImagePath    string `json:"image_path"`
		AnalysisType string `json:"analysis_type"`
	} `json:"benchmark_info"`
	Result hazard.Assessment `json:"analysis_result"`
}

// WriteAssessment writes one ad-hoc assessment result to a JSON file.
func WriteAssessment(path, imagePath string, a hazard.Assessment) error {
	var doc singleResult
	doc.Info.ImagePath = imagePath
	doc.Info.AnalysisType = "factory_hazard_detection"
	doc.Result = a

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating results directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating result file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("error writing result: %w", err)
	}

	return nil
}
