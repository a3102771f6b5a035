package client

import (
	"context"

	"pulseboard/internal/models"
)

// IMetricsSource is what the refresh controller polls. The production
// implementation is MetricsClient; tests substitute their own.
type IMetricsSource interface {
	// FetchDashboard retrieves all dashboard data for the given reporting
	// window in one shot. It either returns a fully populated view-state or
	// an error; there is no partial result. Canceling ctx abandons every
	// in-flight request.
	FetchDashboard(ctx context.Context, windowDays int) (models.ViewState, error)
}
