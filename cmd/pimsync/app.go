package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/MichalMitros/pim-sync/cmd/pimsync/config"
	"github.com/MichalMitros/pim-sync/internal/category"
	"github.com/MichalMitros/pim-sync/internal/pim"
	"github.com/MichalMitros/pim-sync/internal/platform/media"
	"github.com/MichalMitros/pim-sync/internal/platform/rabbitmq"
	"github.com/MichalMitros/pim-sync/internal/platform/storage"
	"github.com/MichalMitros/pim-sync/internal/product"
	"github.com/MichalMitros/pim-sync/internal/syncer"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// app holds application dependencies.
type app struct {
	cfg    *config.Config
	logger *zerolog.Logger
	db     *sql.DB
	syncer *syncer.Syncer
}

func newApp(cfg *config.Config, logger *zerolog.Logger) (*app, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("can't open Postgres connection: %w", err)
	}

	pg := storage.NewPostgres(db)

	ops := []pim.Option{
		pim.WithRateLimit(cfg.PIM.RequestsPerSecond),
		pim.WithUserAgent(cfg.PIM.UserAgent),
		pim.WithTokenLifetime(cfg.PIM.TokenLifetime, cfg.PIM.TokenMargin),
		pim.WithDownloadTimeout(cfg.PIM.DownloadTimeout),
	}
	if cfg.PIM.ImageURL != "" {
		ops = append(ops, pim.WithImageURL(cfg.PIM.ImageURL))
	}

	client := pim.NewClient(
		pim.NewHTTPClient(cfg.PIM.HTTPTimeout, cfg.PIM.ConnectTimeout),
		cfg.PIM.APIURL,
		cfg.PIM.Login,
		cfg.PIM.Password,
		logger,
		ops...,
	)

	productOps := []product.Option{
		product.WithStagingDir(cfg.Sync.StagingDir),
		product.WithManufacturerUID(cfg.PIM.ManufacturerUID),
	}
	if cfg.Sync.TmpDir != "" {
		productOps = append(productOps, product.WithTempDir(cfg.Sync.TmpDir))
	}

	s := syncer.NewSyncer(
		client,
		category.NewSynchronizer(client, pg, logger),
		product.NewSynchronizer(client, pg, media.NewLibrary(pg, cfg.Sync.MediaDir, logger), logger, productOps...),
		pg,
		cfg.PIM.CatalogUID,
		logger,
		syncer.WithRetention(cfg.Sync.LogRetention),
		syncer.WithStaleAfter(cfg.Sync.StaleAfter),
	)

	return &app{
		cfg:    cfg,
		logger: logger,
		db:     db,
		syncer: s,
	}, nil
}

// openRabbitMQ opens RabbitMQ connection with commands queue declared.
func (a *app) openRabbitMQ() (*amqp.Connection, *rabbitmq.RabbitMQ, error) {
	if a.cfg.RabbitMQ.URL == "" {
		return nil, nil, errors.New("RABBITMQ_URL is not set")
	}

	conn, err := amqp.Dial(a.cfg.RabbitMQ.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("can't open RabbitMQ connection: %w", err)
	}

	mq, err := rabbitmq.NewRabbitMQ(conn, a.cfg.RabbitMQ.Exchange)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	if err := mq.DeclareQueue(a.cfg.RabbitMQ.Queue, a.cfg.RabbitMQ.RoutingKey); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return conn, mq, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error().
			Err(err).
			Msg("can't close Postgres connection")
	}
}
