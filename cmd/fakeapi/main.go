package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/taskadmin/internal/buildinfo"
	"github.com/dmitrijs2005/taskadmin/internal/fakeapi"
	"github.com/dmitrijs2005/taskadmin/internal/fakeapi/config"
	"github.com/dmitrijs2005/taskadmin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	app, err := fakeapi.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
