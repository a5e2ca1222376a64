package analytics

import (
	"time"

	"go-link-shortener/types"
)

// Dashboard holds the analytics inputs and the summary derived from them.
// Every setter recomputes the summary, so Summary always matches Links and Timeframe.
type Dashboard struct {
	Links     []types.AnalyticsLink
	Timeframe types.Timeframe
	Summary   types.Summary
}

// NewDashboard starts on the today view.
func NewDashboard(links []types.AnalyticsLink, now time.Time) Dashboard {
	return Dashboard{Timeframe: types.TimeframeToday}.SetLinks(links, now)
}

// SetLinks replaces the input collection.
func (d Dashboard) SetLinks(links []types.AnalyticsLink, now time.Time) Dashboard {
	d.Links = links
	d.Summary = Compute(d.Links, d.Timeframe, now)
	return d
}

// SetTimeframe changes the selected window.
func (d Dashboard) SetTimeframe(tf types.Timeframe, now time.Time) Dashboard {
	d.Timeframe = tf
	d.Summary = Compute(d.Links, d.Timeframe, now)
	return d
}
