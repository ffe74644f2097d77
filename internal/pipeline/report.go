package pipeline

import (
	"fmt"
	"strings"

	"github.com/symcla/symcla/internal/model"
)

// Summarize tallies category counts and means over the final rows and
// renders a short human-readable report.
func Summarize(rows []model.ResultRow) *model.RunResult {
	res := &model.RunResult{Genomes: len(rows)}
	if len(rows) == 0 {
		res.Report = "no genomes classified"
		return res
	}

	var scoreSum, completeSum float64
	for _, r := range rows {
		scoreSum += r.Score
		completeSum += r.Completeness
		switch model.Categorize(r.Score) {
		case model.CategoryFreeLiving:
			res.FreeLiving++
		case model.CategoryHostAssoc:
			res.HostAssoc++
		case model.CategoryIntracellular:
			res.Intracellular++
		}
	}
	res.MeanScore = scoreSum / float64(len(rows))
	res.MeanComplete = completeSum / float64(len(rows))

	var b strings.Builder
	fmt.Fprintf(&b, "classified %d genomes: %d %s, %d %s, %d %s\n",
		res.Genomes,
		res.FreeLiving, model.CategoryFreeLiving,
		res.HostAssoc, model.CategoryHostAssoc,
		res.Intracellular, model.CategoryIntracellular,
	)
	fmt.Fprintf(&b, "mean symcla score %.3f, mean completeness %.1f%%", res.MeanScore, res.MeanComplete)
	res.Report = b.String()
	return res
}
