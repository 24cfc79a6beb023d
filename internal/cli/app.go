package cli

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/execdash/internal/app"
	"github.com/emiliopalmerini/execdash/internal/config"
)

// loadApp loads configuration and builds the full application.
func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, app.NewLogger(cfg))
}

// openLocal opens the libsql sample warehouse for migrate and seed.
func openLocal() (*sql.DB, zerolog.Logger, error) {
	cfg, err := config.LoadLocal(envFiles...)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := app.NewLogger(cfg)
	db, err := app.OpenLibSQL(cfg)
	if err != nil {
		return nil, log, err
	}
	return db, log, nil
}
