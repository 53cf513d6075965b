package fx

import (
	"database/sql"

	"bowling-tracker/internal/config"
	"bowling-tracker/internal/database"
	"bowling-tracker/internal/db"
	"bowling-tracker/internal/logger"
	"bowling-tracker/internal/metrics"
	"bowling-tracker/internal/repository"
	"bowling-tracker/internal/scoring"
	"bowling-tracker/internal/server"
	"bowling-tracker/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideRegisterer(reg *prometheus.Registry) prometheus.Registerer {
	return reg
}

func ProvideGatherer(reg *prometheus.Registry) prometheus.Gatherer {
	return reg
}

func ProvideAssembler() *scoring.Assembler {
	return scoring.NewAssembler()
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// metrics
	fx.Provide(metrics.NewRegistry),
	fx.Provide(ProvideRegisterer),
	fx.Provide(ProvideGatherer),
	fx.Provide(metrics.New),
	// repos
	fx.Provide(repository.NewGameRepository),
	// svc
	fx.Provide(ProvideAssembler),
	fx.Provide(service.NewGameService),
	// server
	fx.Provide(server.NewTrackerServer),
)
