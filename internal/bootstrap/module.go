package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"inspectra/internal/bootstrap/config"
	"inspectra/internal/bootstrap/database"
	"inspectra/internal/bootstrap/logging"
	"inspectra/internal/domain/compliance"
	cacheinfra "inspectra/internal/infrastructure/cache"
	"inspectra/internal/infrastructure/events"
	sqliterepo "inspectra/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "inspectra/internal/infrastructure/persistence/sqlite/uow"
	"inspectra/internal/ports"
	compliancesvc "inspectra/internal/usecase/compliance"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(providePolicy),
	fx.Provide(providePublisher),
	fx.Provide(provideRiskScorer),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewComplianceRepository,
			fx.As(new(ports.ComplianceRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(compliancesvc.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func providePolicy(cfg config.Config) (compliance.Policy, error) {
	return compliance.LoadPolicy(cfg.Policy.Profile)
}

func provideRiskScorer() compliance.RiskScorer {
	return compliance.HeuristicRiskScorer{}
}

func providePublisher(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (ports.EventPublisher, error) {
	if !cfg.Events.Enabled {
		return events.NewLogPublisher(), nil
	}

	publisher, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			publisher.Close()
			return nil
		},
	})

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx")),
		"nats publisher connected",
		slog.String("url", cfg.Events.NATSURL),
	)
	return publisher, nil
}
