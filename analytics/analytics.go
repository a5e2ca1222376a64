// Package analytics summarizes link collections over a timeframe window.
//
// All functions take the reference time explicitly and never read the wall clock.
package analytics

import (
	"errors"
	"math"
	"sort"
	"time"

	"go-link-shortener/types"
)

// TopN is the size of the top performing list.
const TopN = 5

const week = 7 * 24 * time.Hour

// ErrUnknownTimeframe is returned by ParseTimeframe for unsupported selectors.
var ErrUnknownTimeframe = errors.New("unknown timeframe")

// ParseTimeframe maps a selector string to a Timeframe.
// An empty selector means today, the dashboard's initial selection.
func ParseTimeframe(s string) (types.Timeframe, error) {
	switch types.Timeframe(s) {
	case "":
		return types.TimeframeToday, nil
	case types.TimeframeToday, types.TimeframeWeek, types.TimeframeAll:
		return types.Timeframe(s), nil
	default:
		return "", ErrUnknownTimeframe
	}
}

// Normalize returns tf when it is a known timeframe and TimeframeAll otherwise.
func Normalize(tf types.Timeframe) types.Timeframe {
	switch tf {
	case types.TimeframeToday, types.TimeframeWeek, types.TimeframeAll:
		return tf
	default:
		return types.TimeframeAll
	}
}

// FromLink maps a canonical link record to the analytics input shape.
func FromLink(l types.Link) types.AnalyticsLink {
	return types.AnalyticsLink{
		UID:           l.ID,
		BirthTime:     l.CreatedAt,
		AccessCount:   l.Clicks,
		Lifespan:      l.ExpiryMinutes,
		SourceAddress: l.OriginalURL,
		CompactURL:    l.ShortURL,
	}
}

// FromLinks maps every record with FromLink.
func FromLinks(links []types.Link) []types.AnalyticsLink {
	out := make([]types.AnalyticsLink, len(links))
	for i, l := range links {
		out[i] = FromLink(l)
	}
	return out
}

// Filter returns the records that fall inside tf relative to now.
// Unknown timeframes keep everything.
func Filter(links []types.AnalyticsLink, tf types.Timeframe, now time.Time) []types.AnalyticsLink {
	var keep func(types.AnalyticsLink) bool
	switch tf {
	case types.TimeframeToday:
		y, m, d := now.Date()
		keep = func(l types.AnalyticsLink) bool {
			ly, lm, ld := l.BirthTime.In(now.Location()).Date()
			return ly == y && lm == m && ld == d
		}
	case types.TimeframeWeek:
		weekAgo := now.Add(-week)
		keep = func(l types.AnalyticsLink) bool {
			return !l.BirthTime.Before(weekAgo)
		}
	default:
		out := make([]types.AnalyticsLink, len(links))
		copy(out, links)
		return out
	}

	out := make([]types.AnalyticsLink, 0, len(links))
	for _, l := range links {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// Compute filters links by tf and aggregates the result.
func Compute(links []types.AnalyticsLink, tf types.Timeframe, now time.Time) types.Summary {
	filtered := Filter(links, tf, now)

	summary := types.Summary{
		Timeframe:           Normalize(tf),
		TotalGeneratedLinks: len(filtered),
		TopPerformingLinks:  []types.AnalyticsLink{},
	}
	if len(filtered) == 0 {
		return summary
	}

	lifespan := 0
	for _, l := range filtered {
		summary.TotalInteractions += l.AccessCount
		lifespan += l.Lifespan
	}
	summary.AverageLifespan = roundHalfUp(float64(lifespan) / float64(len(filtered)))
	summary.TopPerformingLinks = top(filtered, TopN)

	return summary
}

// top returns the n records with the highest access count, highest first.
// filtered is owned by the caller of top and may be reordered.
func top(filtered []types.AnalyticsLink, n int) []types.AnalyticsLink {
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].AccessCount > filtered[j].AccessCount
	})
	if len(filtered) > n {
		filtered = filtered[:n]
	}
	out := make([]types.AnalyticsLink, len(filtered))
	copy(out, filtered)
	return out
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
