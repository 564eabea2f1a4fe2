// Package app assembles the report services from configuration for the web
// and terminal entry points.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/config"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/daterange"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export/csv"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export/pdf"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export/xlsx"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/registry"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/reports"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/memory"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/postgres"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/pricing"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/sales"
	"github.com/rs/zerolog"
)

type App struct {
	Registry registry.Registry
	Resolver daterange.Resolver
	Reports  reports.Service
	Exporter export.Service
	Source   string
	Now      func() time.Time

	db *sql.DB
}

// New wires the store selected by cfg.Store into the report and export services
func New(ctx context.Context, cfg *config.Config, now func() time.Time) (*App, error) {
	if now == nil {
		now = time.Now
	}
	logger := zerolog.Ctx(ctx)

	store, db, source, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	svc, err := reports.NewService(store, pricing.NewStore())
	if err != nil {
		return nil, fmt.Errorf("failed to create reports service: %w", err)
	}
	svc = reports.NewCachedService(svc, cfg.Cache.TTL, cfg.Cache.Cleanup)

	reg := registry.Default()
	resolver := daterange.NewResolver(now)
	exporter, err := export.NewService(export.Dependencies{
		Reports:  svc,
		Registry: reg,
		Resolver: resolver,
		Renderers: []export.Renderer{
			pdf.NewRenderer(pdf.Settings{Compress: cfg.Export.CompressPDF}),
			xlsx.NewRenderer(),
			csv.NewRenderer(),
		},
		Now: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	logger.Info().Str("source", source).Msg("report services ready")

	return &App{
		Registry: reg,
		Resolver: resolver,
		Reports:  svc,
		Exporter: exporter,
		Source:   source,
		Now:      now,
		db:       db,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openStore(ctx context.Context, cfg config.StoreConfig) (sales.Store, *sql.DB, string, error) {
	dsn, maxOpen := cfg.DSN, cfg.MaxOpenConns
	source := "dsn"

	if dsn == "" && cfg.Profile != "" {
		path := cfg.ProfilesPath
		if path == "" {
			path = config.DefaultProfilesPath()
		}
		profiles, err := config.NewRegistry(path)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to create profiles registry: %w", err)
		}
		ds, err := profiles.GetDataSource(ctx, cfg.Profile)
		if err != nil {
			return nil, nil, "", err
		}
		dsn, source = ds.DSN, "profile:"+ds.Profile
		if ds.MaxOpenConns > 0 {
			maxOpen = ds.MaxOpenConns
		}
	}

	if dsn != "" {
		db, err := postgres.NewDB(postgres.Settings{
			DSN:             dsn,
			MaxOpenConns:    maxOpen,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to open postgres: %w", err)
		}
		store, err := postgres.NewSalesStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, "", fmt.Errorf("failed to create postgres store: %w", err)
		}
		return store, db, source, nil
	}

	if cfg.Fixture != "" {
		snap, err := memory.LoadFile(cfg.Fixture)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to load fixture: %w", err)
		}
		store, err := memory.NewSalesStore(snap)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to create memory store: %w", err)
		}
		return store, nil, "fixture:" + cfg.Fixture, nil
	}

	return nil, nil, "", fmt.Errorf("no data source configured: set store.dsn, store.profile or store.fixture")
}
