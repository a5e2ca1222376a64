// Package types defines the data structures used in the link shortener service.
package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Link is the canonical link record produced by a successful submission.
type Link struct {
	ID            string    `json:"id"`
	OriginalURL   string    `json:"original_url"`
	ShortCode     string    `json:"short_code"`
	ShortURL      string    `json:"short_url"`
	ExpiryMinutes int       `json:"expiry_minutes"`
	CreatedAt     time.Time `json:"created_at"`
	Clicks        int       `json:"clicks"`
}

// AnalyticsLink is the record shape consumed by the analytics aggregator.
// Its JSON keys are the ones dashboard clients already send.
type AnalyticsLink struct {
	UID           string    `json:"uid"`
	BirthTime     time.Time `json:"birthTime"`
	AccessCount   int       `json:"accessCount"`
	Lifespan      int       `json:"lifespan"`
	SourceAddress string    `json:"sourceAddress"`
	CompactURL    string    `json:"compactUrl"`
}

// Minutes holds an expiry value exactly as the client typed it.
// It decodes from a JSON number, a JSON string or null.
type Minutes string

// UnmarshalJSON accepts 45, "45", "" and null.
func (m *Minutes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Minutes(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*m = Minutes(n.String())
	return nil
}

// MarshalJSON writes numeric values as numbers and everything else as a string.
func (m Minutes) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(m)); err == nil {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(m))
}

// LinkRequest represents the request structure for submitting a URL.
type LinkRequest struct {
	URL           string  `json:"url" validate:"required,httpurl"`
	CustomCode    string  `json:"custom_code,omitempty"`
	ExpiryMinutes Minutes `json:"expiry_minutes,omitempty"`
}

// Timeframe selects which records analytics are computed over.
type Timeframe string

const (
	TimeframeToday Timeframe = "today"
	TimeframeWeek  Timeframe = "week"
	TimeframeAll   Timeframe = "all"
)

// Summary is the aggregate rendered by the analytics dashboard.
type Summary struct {
	Timeframe           Timeframe       `json:"timeframe"`
	TotalGeneratedLinks int             `json:"total_generated_links"`
	TotalInteractions   int             `json:"total_interactions"`
	AverageLifespan     int             `json:"average_lifespan"`
	TopPerformingLinks  []AnalyticsLink `json:"top_performing_links"`
}

// AnalyticsRequest carries an externally supplied link collection.
type AnalyticsRequest struct {
	Timeframe string          `json:"timeframe"`
	Links     []AnalyticsLink `json:"links"`
}

// ListResponse wraps the stored links.
type ListResponse struct {
	Links []Link `json:"links"`
	Count int    `json:"count"`
}
