// internal/hazard/summary.go
package hazard

// Summarize computes the benchmark summary over the completed trials.
// Means are taken over completed trials only; an empty slice yields zero
// averages rather than a division panic. The overall winner is a strict
// comparison of the two means, with a tie only on exact equality.
func Summarize(trials []Trial) BenchmarkSummary {
	summary := BenchmarkSummary{
		TotalTests:       len(trials),
		SinglePassScores: make([]int, 0, len(trials)),
		TwoRoundScores:   make([]int, 0, len(trials)),
	}

	var singleTotal, twoTotal int
	for _, t := range trials {
		summary.SinglePassScores = append(summary.SinglePassScores, t.Evaluation.SinglePassScore)
		summary.TwoRoundScores = append(summary.TwoRoundScores, t.Evaluation.TwoRoundScore)
		singleTotal += t.Evaluation.SinglePassScore
		twoTotal += t.Evaluation.TwoRoundScore
	}

	if len(trials) > 0 {
		count := float64(len(trials))
		summary.SinglePassAverage = float64(singleTotal) / count
		summary.TwoRoundAverage = float64(twoTotal) / count
	}

	switch {
	case summary.SinglePassAverage > summary.TwoRoundAverage:
		summary.Winner = WinnerSinglePass
	case summary.TwoRoundAverage > summary.SinglePassAverage:
		summary.Winner = WinnerTwoRound
	default:
		summary.Winner = WinnerTie
	}

	return summary
}
