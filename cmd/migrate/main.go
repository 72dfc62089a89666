// Command migrate applies the SQL migrations in migrations/ to the configured
// database using the atlas CLI. It only needs the DB_* environment variables,
// so it can run in environments where the full server config is absent.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"tablebook/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	dir := flag.String("dir", "file://migrations", "migration directory URL")
	flag.Parse()

	_ = godotenv.Load()

	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		slog.Error("failed to read database config", "error", err.Error())
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err.Error())
		os.Exit(1)
	}

	ctx := context.Background()
	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dbCfg.BuildDSN(),
		DirURL: *dir,
	})
	if err != nil {
		slog.Error("migration failed", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
	)
}
