package app

import (
	log "github.com/sirupsen/logrus"

	"docpipe/internal/batch"
	"docpipe/internal/config"
	"docpipe/internal/engine"
	"docpipe/internal/extract"
	"docpipe/internal/retry"
)

// App wires the pipeline stages together: one warm engine pool shared for the
// process lifetime, the strategy dispatcher built over it, the retry
// controller, and the batch orchestrator driving the controller.
type App struct {
	Config       *config.Config
	Engines      *engine.Pool
	Dispatcher   *extract.Dispatcher
	Controller   *retry.Controller
	Orchestrator *batch.Orchestrator
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	app.Engines = engine.NewPool(cfg, engine.ExecRunner{})
	app.Dispatcher = extract.NewDispatcher(cfg, app.Engines)
	app.Controller = retry.NewController(cfg, app.Dispatcher)
	app.Orchestrator = batch.NewOrchestrator(cfg, app.Controller)

	log.Debug("application initialization complete")
	return app, nil
}
