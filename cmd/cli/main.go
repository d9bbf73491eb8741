package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/taskadmin/internal/buildinfo"
	"github.com/dmitrijs2005/taskadmin/internal/client/cli"
	"github.com/dmitrijs2005/taskadmin/internal/client/config"
	"github.com/dmitrijs2005/taskadmin/internal/client/storage"
	"github.com/dmitrijs2005/taskadmin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	app := cli.NewApp(cfg, db, logger)

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
