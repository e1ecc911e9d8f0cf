package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peopledesk/backoffice/internal/server"
	"github.com/peopledesk/backoffice/modules"
	"github.com/peopledesk/backoffice/pkg/application"
	"github.com/peopledesk/backoffice/pkg/configuration"
	"github.com/peopledesk/backoffice/pkg/eventbus"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		logger.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	app := application.New(pool, eventbus.NewEventPublisher(logger), logger)
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		logger.WithError(err).Fatal("failed to load modules")
	}

	if err := applySchemas(ctx, pool, app); err != nil {
		logger.WithError(err).Fatal("failed to apply schema")
	}

	srv, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to build server")
	}

	logger.Infof("listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

// applySchemas runs every embedded schema file the loaded modules registered.
// The statements are idempotent (CREATE TABLE IF NOT EXISTS), so reapplying
// on every boot is safe.
func applySchemas(ctx context.Context, pool *pgxpool.Pool, app application.Application) error {
	for _, schemaFS := range app.Schemas() {
		err := fs.WalkDir(schemaFS, ".", func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() || !strings.HasSuffix(path, ".sql") {
				return walkErr
			}
			content, err := fs.ReadFile(schemaFS, path)
			if err != nil {
				return err
			}
			_, err = pool.Exec(ctx, string(content))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}
