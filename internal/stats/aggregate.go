// Package stats aggregates quiz statistics records for display.
package stats

import (
	"time"

	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/session"
)

// Group is the running total for one deck name.
type Group struct {
	Deck       string
	Attempts   int
	TotalCards int
	Correct    int
}

// Accuracy is the group's correct/total percentage, computed from the
// summed counts rather than by averaging per-attempt accuracies.
func (g Group) Accuracy() int {
	return session.Accuracy(g.Correct, g.TotalCards)
}

// Point is one entry of the accuracy-over-time series.
type Point struct {
	Date     time.Time
	Accuracy int
	Deck     string
}

// ChartState tells the view what the trend chart can show.
type ChartState int

const (
	ChartEmpty        ChartState = iota // no data points
	ChartNeedMoreData                   // a single point, too few for a trend
	ChartTrend                          // two or more points
)

// Report is the aggregated view over a list of stats records.
type Report struct {
	// Groups holds one entry per distinct deck name, in first-seen order.
	Groups []Group

	TotalReviewed   int
	TotalCorrect    int
	OverallAccuracy int

	// Series is one point per record, in input order.
	Series []Point
}

// Aggregate groups entries by deck name and computes the totals. Decks are
// keyed by name, so two distinct decks sharing a name are merged.
func Aggregate(entries []models.StatsEntry) Report {
	var r Report
	index := make(map[string]int)

	for _, e := range entries {
		i, ok := index[e.Deck]
		if !ok {
			i = len(r.Groups)
			index[e.Deck] = i
			r.Groups = append(r.Groups, Group{Deck: e.Deck})
		}
		g := &r.Groups[i]
		g.Attempts++
		g.TotalCards += e.TotalCards
		g.Correct += e.Correct

		r.Series = append(r.Series, Point{Date: e.Date, Accuracy: e.Accuracy, Deck: e.Deck})
	}

	for _, g := range r.Groups {
		r.TotalReviewed += g.TotalCards
		r.TotalCorrect += g.Correct
	}
	r.OverallAccuracy = session.Accuracy(r.TotalCorrect, r.TotalReviewed)
	return r
}

// Chart returns which chart the series supports.
func (r Report) Chart() ChartState {
	switch {
	case len(r.Series) == 0:
		return ChartEmpty
	case len(r.Series) == 1:
		return ChartNeedMoreData
	}
	return ChartTrend
}

// DecksStudied returns the number of distinct deck names.
func (r Report) DecksStudied() int {
	return len(r.Groups)
}
