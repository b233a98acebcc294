// -----------------------------------------------------------------------
// Application wiring - services and handlers behind the HTTP server
// -----------------------------------------------------------------------

package app

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/verto/internal/common"
	"github.com/ternarybob/verto/internal/converter"
	"github.com/ternarybob/verto/internal/handlers"
	"github.com/ternarybob/verto/internal/interfaces"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Conversion service
	ConverterService interfaces.Converter

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	ConvertHandler *handlers.ConvertHandler
	PageHandler    *handlers.PageHandler
}

// New creates and wires the application components
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	converterService := converter.NewService(logger)

	return &App{
		Config:           config,
		Logger:           logger,
		ConverterService: converterService,
		APIHandler:       handlers.NewAPIHandler(),
		ConvertHandler:   handlers.NewConvertHandler(converterService, logger, config.Server.MaxUploadBytes),
		PageHandler:      handlers.NewPageHandler(logger),
	}, nil
}

// Close releases application resources. Conversions hold no state between
// calls, so there is currently nothing to release.
func (a *App) Close() error {
	return nil
}
