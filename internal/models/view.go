package models

import "time"

// QueryParams are the caller-settable inputs of the refresh controller.
// Changing either field starts a fresh foreground cycle and re-arms the
// background timer.
type QueryParams struct {
	WindowDays             int `json:"window_days"              validate:"oneof=7 30 90 180"`
	RefreshIntervalSeconds int `json:"refresh_interval_seconds" validate:"gte=0"`
}

// LoadState tags the controller's user-visible loading phase.
type LoadState string

const (
	LoadIdle    LoadState = "idle"
	LoadLoading LoadState = "loading"
	LoadReady   LoadState = "ready"
	LoadError   LoadState = "error"
)

// LoadStatus carries the current phase plus the error message when the phase
// is LoadError. Background cycles never enter LoadLoading.
type LoadStatus struct {
	State   LoadState `json:"state"`
	Message string    `json:"message,omitempty"`
}

// ViewState aggregates the results of one completed fetch cycle. All seven
// fields are committed together or not at all, so they always describe a
// single consistent window of data.
type ViewState struct {
	Overview     OverviewStats     `json:"overview"`
	Series       []TimeseriesPoint `json:"series"`
	TopEvents    []EventCount      `json:"top_events"`
	TopPages     []PageCount       `json:"top_pages"`
	TopReferrers []ReferrerCount   `json:"top_referrers"`
	TopOutbound  []OutboundCount   `json:"top_outbound"`
	Recent       []RecentEvent     `json:"recent"`
}

// Snapshot is the read surface the controller hands to renderers: a copy of
// the committed view-state plus the load status and the params it was
// fetched with. UpdatedAt is zero until the first successful commit.
type Snapshot struct {
	View      ViewState   `json:"view"`
	Status    LoadStatus  `json:"status"`
	Params    QueryParams `json:"params"`
	UpdatedAt time.Time   `json:"updated_at,omitzero"`
}

// FillEmpty replaces nil list fields with empty slices. A response missing
// its array field decodes to nil; the dashboard must treat that as an empty
// list, never as an error or a JSON null.
func (v *ViewState) FillEmpty() {
	if v.Series == nil {
		v.Series = []TimeseriesPoint{}
	}
	if v.TopEvents == nil {
		v.TopEvents = []EventCount{}
	}
	if v.TopPages == nil {
		v.TopPages = []PageCount{}
	}
	if v.TopReferrers == nil {
		v.TopReferrers = []ReferrerCount{}
	}
	if v.TopOutbound == nil {
		v.TopOutbound = []OutboundCount{}
	}
	if v.Recent == nil {
		v.Recent = []RecentEvent{}
	}
}

// Clone deep-copies the slice-typed fields so a caller can never alias the
// controller's committed state.
func (v ViewState) Clone() ViewState {
	out := v
	out.Series = append([]TimeseriesPoint(nil), v.Series...)
	out.TopEvents = append([]EventCount(nil), v.TopEvents...)
	out.TopPages = append([]PageCount(nil), v.TopPages...)
	out.TopReferrers = append([]ReferrerCount(nil), v.TopReferrers...)
	out.TopOutbound = append([]OutboundCount(nil), v.TopOutbound...)
	out.Recent = append([]RecentEvent(nil), v.Recent...)
	return out
}
