package configuration

const AppName = "pulseboard"

// Metrics API endpoint paths, relative to the configured base URL.
const (
	EndpointOverview     = "/stats/overview"
	EndpointTimeseries   = "/stats/timeseries"
	EndpointTopEvents    = "/stats/top-events"
	EndpointTopPages     = "/stats/top-pages"
	EndpointTopReferrers = "/stats/top-referrers"
	EndpointTopOutbound  = "/stats/top-outbound"
	EndpointRecentEvents = "/stats/recent-events"
)

// TimeseriesEventType is the only event type the chart plots.
const TimeseriesEventType = "page_view"

// Fixed list sizes. Ranked tables show the top ten, the activity feed the
// last twenty-five.
const (
	RankedListLimit   = 10
	RecentEventsLimit = 25
)

// AllowedWindowDays are the selectable reporting windows.
var AllowedWindowDays = []int{7, 30, 90, 180}

// ConfigFileSearchPaths are checked in order when CONFIG_FILE_PATH is unset.
var ConfigFileSearchPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pulseboard/config.yaml",
}

// ArrayConfigFields are config keys whose env values are parsed as lists.
var ArrayConfigFields = []string{
	"app.allowed_origins",
}
