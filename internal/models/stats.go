package models

import "time"

// OverviewStats mirrors the /stats/overview payload.
type OverviewStats struct {
	PageViews int64 `json:"page_views"`
	Sessions  int64 `json:"sessions"`
	Events    int64 `json:"events"`
}

// TimeseriesPoint is one day bucket of the /stats/timeseries payload.
type TimeseriesPoint struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type TimeseriesResponse struct {
	Series []TimeseriesPoint `json:"series"`
}

// EventCount is one row of /stats/top-events.
type EventCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// PageCount is one row of /stats/top-pages.
type PageCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// ReferrerCount is one row of /stats/top-referrers.
type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Count    int64  `json:"count"`
}

// OutboundCount is one row of /stats/top-outbound.
type OutboundCount struct {
	URL   string `json:"url"`
	Count int64  `json:"count"`
}

// RecentEvent is one row of /stats/recent-events. Name and Path are optional
// in the payload and stay empty when absent.
type RecentEvent struct {
	CreatedAt time.Time `json:"created_at"`
	Type      string    `json:"type"`
	Name      string    `json:"name,omitempty"`
	Path      string    `json:"path,omitempty"`
}

type EventCountsResponse struct {
	Items []EventCount `json:"items"`
}

type PageCountsResponse struct {
	Items []PageCount `json:"items"`
}

type ReferrerCountsResponse struct {
	Items []ReferrerCount `json:"items"`
}

type OutboundCountsResponse struct {
	Items []OutboundCount `json:"items"`
}

type RecentEventsResponse struct {
	Items []RecentEvent `json:"items"`
}
