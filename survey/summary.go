// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"math"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/survey-tally/models"
)

// Percent returns count/total*100 rounded to one decimal, or 0 when total is 0.
func Percent(count, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// VotesLabel formats a count the way the dashboard shows it, e.g. "1.234 votos".
func VotesLabel(count int64) string {
	return humanize.FormatInteger("#.###,", int(count)) + " votos"
}

// Summarize computes the per-option percentages shown on the dashboard.
func Summarize(agg models.Aggregate, storage string) models.SummaryResponse {
	resp := models.SummaryResponse{
		TotalSubmissions: agg.TotalSubmissions,
		Storage:          storage,
		Questions:        make([]models.QuestionSummary, 0, len(models.Questions)),
	}

	for _, q := range models.Questions {
		counts := agg.Counts(q)
		qs := models.QuestionSummary{
			Question: q,
			Options:  make([]models.OptionSummary, 0, len(models.Options)),
		}
		for _, opt := range models.Options {
			n := counts[opt]
			qs.Options = append(qs.Options, models.OptionSummary{
				Option:  opt,
				Count:   n,
				Percent: Percent(n, agg.TotalSubmissions),
				Label:   VotesLabel(n),
			})
		}
		resp.Questions = append(resp.Questions, qs)
	}

	return resp
}
