package client

import (
	"context"
	"strconv"

	"pulseboard/internal/configuration"
	"pulseboard/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MetricsClient talks to the remote analytics API. It is safe for concurrent
// use; one instance is shared by every fetch cycle.
type MetricsClient struct {
	baseURL string
	http    *resty.Client
}

func NewMetricsClient(config models.MetricsConfiguration) *MetricsClient {
	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetHeader("Accept", "application/json")

	if config.BearerToken != "" {
		httpClient.SetAuthToken(config.BearerToken)
	}

	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.New().String())
		return nil
	})

	return &MetricsClient{
		baseURL: config.BaseURL,
		http:    httpClient,
	}
}

func (c *MetricsClient) get(ctx context.Context, endpoint string, query map[string]string, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(out).
		Get(endpoint)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode()}
	}
	return nil
}

func (c *MetricsClient) Overview(ctx context.Context, windowDays int) (models.OverviewStats, error) {
	var out models.OverviewStats
	err := c.get(ctx, configuration.EndpointOverview, map[string]string{
		"days": strconv.Itoa(windowDays),
	}, &out)
	return out, err
}

func (c *MetricsClient) Timeseries(ctx context.Context, windowDays int) ([]models.TimeseriesPoint, error) {
	var out models.TimeseriesResponse
	err := c.get(ctx, configuration.EndpointTimeseries, map[string]string{
		"days": strconv.Itoa(windowDays),
		"type": configuration.TimeseriesEventType,
	}, &out)
	return out.Series, err
}

func (c *MetricsClient) TopEvents(ctx context.Context, windowDays, limit int) ([]models.EventCount, error) {
	var out models.EventCountsResponse
	err := c.get(ctx, configuration.EndpointTopEvents, rankedQuery(windowDays, limit), &out)
	return out.Items, err
}

func (c *MetricsClient) TopPages(ctx context.Context, windowDays, limit int) ([]models.PageCount, error) {
	var out models.PageCountsResponse
	err := c.get(ctx, configuration.EndpointTopPages, rankedQuery(windowDays, limit), &out)
	return out.Items, err
}

func (c *MetricsClient) TopReferrers(ctx context.Context, windowDays, limit int) ([]models.ReferrerCount, error) {
	var out models.ReferrerCountsResponse
	err := c.get(ctx, configuration.EndpointTopReferrers, rankedQuery(windowDays, limit), &out)
	return out.Items, err
}

func (c *MetricsClient) TopOutbound(ctx context.Context, windowDays, limit int) ([]models.OutboundCount, error) {
	var out models.OutboundCountsResponse
	err := c.get(ctx, configuration.EndpointTopOutbound, rankedQuery(windowDays, limit), &out)
	return out.Items, err
}

func (c *MetricsClient) RecentEvents(ctx context.Context, limit int) ([]models.RecentEvent, error) {
	var out models.RecentEventsResponse
	err := c.get(ctx, configuration.EndpointRecentEvents, map[string]string{
		"limit": strconv.Itoa(limit),
	}, &out)
	return out.Items, err
}

func rankedQuery(windowDays, limit int) map[string]string {
	return map[string]string{
		"days":  strconv.Itoa(windowDays),
		"limit": strconv.Itoa(limit),
	}
}

// FetchDashboard issues the seven endpoint requests concurrently under one
// errgroup. The group context is the shared cancellation signal: the first
// failing request cancels the other six and its error fails the whole fetch.
// Each goroutine writes a distinct view-state field, so no locking is needed.
func (c *MetricsClient) FetchDashboard(ctx context.Context, windowDays int) (models.ViewState, error) {
	if c.baseURL == "" {
		return models.ViewState{}, ErrNotConfigured
	}

	var view models.ViewState
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := c.Overview(ctx, windowDays)
		view.Overview = out
		return err
	})
	g.Go(func() error {
		out, err := c.Timeseries(ctx, windowDays)
		view.Series = out
		return err
	})
	g.Go(func() error {
		out, err := c.TopEvents(ctx, windowDays, configuration.RankedListLimit)
		view.TopEvents = out
		return err
	})
	g.Go(func() error {
		out, err := c.TopPages(ctx, windowDays, configuration.RankedListLimit)
		view.TopPages = out
		return err
	})
	g.Go(func() error {
		out, err := c.TopReferrers(ctx, windowDays, configuration.RankedListLimit)
		view.TopReferrers = out
		return err
	})
	g.Go(func() error {
		out, err := c.TopOutbound(ctx, windowDays, configuration.RankedListLimit)
		view.TopOutbound = out
		return err
	})
	g.Go(func() error {
		out, err := c.RecentEvents(ctx, configuration.RecentEventsLimit)
		view.Recent = out
		return err
	})

	if err := g.Wait(); err != nil {
		return models.ViewState{}, err
	}

	view.FillEmpty()
	return view, nil
}
