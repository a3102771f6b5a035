package models

type Configuration struct {
	App     AppConfiguration     `mapstructure:"app"     validate:"required"`
	Metrics MetricsConfiguration `mapstructure:"metrics"`
	Query   QueryConfiguration   `mapstructure:"query"   validate:"required"`
}

type AppConfiguration struct {
	LogLevel       string   `mapstructure:"log_level"       validate:"oneof=debug info warn error fatal panic"`
	Port           int      `mapstructure:"port"            validate:"gte=80,lte=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfiguration points at the remote analytics API. BaseURL is allowed
// to be empty here: a missing base URL is surfaced as a terminal load error at
// runtime rather than a startup failure, so the dashboard can still come up
// and tell the operator what is wrong.
type MetricsConfiguration struct {
	BaseURL     string `mapstructure:"base_url"     validate:"omitempty,url"`
	BearerToken string `mapstructure:"bearer_token"`
}

type QueryConfiguration struct {
	WindowDays             int `mapstructure:"window_days"              validate:"oneof=7 30 90 180"`
	RefreshIntervalSeconds int `mapstructure:"refresh_interval_seconds" validate:"gte=0"`
}
