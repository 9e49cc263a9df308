// Package app wires configuration into a ready assistant: the dataset source,
// the rule store behind the classifier, and the response generator.
package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/liamcoop/erpassistant/conversation"
	"github.com/liamcoop/erpassistant/dataset"
	"github.com/liamcoop/erpassistant/intent"
	"github.com/liamcoop/erpassistant/internal/config"
	"github.com/liamcoop/erpassistant/internal/logger"
	"github.com/liamcoop/erpassistant/response"
	"github.com/liamcoop/erpassistant/rules"
)

// App holds the long-lived dependencies of a process
type App struct {
	DB        *sql.DB // nil unless a postgres source is configured
	Dataset   *dataset.Dataset
	Engine    *rules.Engine
	Assistant *conversation.Assistant
}

// New opens the configured sources and builds an assistant over them.
// Extra options are applied after the configured delay.
func New(ctx context.Context, cfg *config.Config, opts ...conversation.Option) (*App, error) {
	a := &App{}

	if cfg.UsesPostgres() {
		db, err := openDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.DB = db
	}

	data, err := a.datasetSource(cfg).Load(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	a.Dataset = data
	logger.Info("dataset loaded",
		"source", cfg.DatasetSource,
		"products", len(data.Products),
		"orders", len(data.Orders),
		"employees", len(data.Employees))

	store, err := a.ruleStore(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	engine, err := rules.NewEngine(store)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}
	a.Engine = engine

	options := append([]conversation.Option{conversation.WithDelay(cfg.ResponseDelay)}, opts...)
	a.Assistant = conversation.NewAssistant(
		intent.NewClassifier(engine, data),
		response.NewGenerator(data),
		options...,
	)

	return a, nil
}

// Close releases the database connection, if any
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func (a *App) datasetSource(cfg *config.Config) dataset.Source {
	if cfg.DatasetSource == config.SourcePostgres {
		return dataset.NewPostgresSource(a.DB)
	}
	return dataset.NewStaticSource()
}

func (a *App) ruleStore(cfg *config.Config) (rules.RuleStore, error) {
	if cfg.RulesSource != config.SourcePostgres {
		store, err := rules.NewInMemoryRuleStoreWith(intent.DefaultRules())
		if err != nil {
			return nil, fmt.Errorf("failed to load default rules: %w", err)
		}
		return store, nil
	}

	store := rules.NewPostgresRuleStore(a.DB)
	seeded, err := store.SeedIfEmpty(intent.DefaultRules())
	if err != nil {
		return nil, fmt.Errorf("failed to seed rules: %w", err)
	}
	if seeded > 0 {
		logger.Info("seeded cascade rules", "count", seeded)
	}
	return store, nil
}

func openDB(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
