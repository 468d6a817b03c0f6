// internal/commands/benchmark.go
package hazardbench

import "github.com/spf13/cobra"

// benchmarkCmd groups benchmark-related CLI commands.
var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Group commands for running hazard-assessment benchmarks",
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)
}
