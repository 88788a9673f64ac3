package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/config"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/infra/providers"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/infra/repository"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/infra/telemetry"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/present/rest"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/present/rest/middleware"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	conf, err := config.Load(*configPath)
	if err != nil {
		log.Error("loading configuration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if conf.Server.EnableTrace {
		shutdown, err := telemetry.Setup(context.Background(), conf.Server.TraceEndpoint)
		if err != nil {
			log.Error("initializing tracing failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Error("shutting down tracing failed", slog.String("error", err.Error()))
			}
		}()
	}

	store := providers.NewStore(conf.Sparql)
	locks := providers.NewLockTable(conf.Locks)

	submitter := providers.NewSubmitter(conf, store, locks, log)
	reorderer := providers.NewReorderer(conf, store, locks, log)
	items := repository.NewAgendaItemRepository(store.Sudo())
	sessions := middleware.NewSessionMiddleware(providers.NewSessionChecker(conf.Session, store))

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("agenda-submission-service"))
	}

	handler := rest.NewHandler(submitter, reorderer, items, sessions)
	handler.RegisterRoutes(e)

	log.Info("starting server", slog.String("listen", conf.Server.Listen))
	e.Logger.Fatal(e.Start(conf.Server.Listen))
}
