package main

import (
	"pulseboard/internal/client"
	"pulseboard/internal/configuration"
	"pulseboard/internal/core"
	"pulseboard/internal/models"
	"pulseboard/internal/refresh"

	"go.uber.org/zap"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))

	config := configuration.Read()
	core.NewLogger(config.App.LogLevel)

	source := client.NewMetricsClient(config.Metrics)

	controller := refresh.NewController(source, models.QueryParams{
		WindowDays:             config.Query.WindowDays,
		RefreshIntervalSeconds: config.Query.RefreshIntervalSeconds,
	})
	controller.Start()

	core.StartHTTPServer(config, controller)
}
