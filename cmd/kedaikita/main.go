// Command kedaikita runs the café management API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kedaikita/kedaikita-server/internal/app"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.Options{ConfigPath: *configPath}

	if *migrateOnly {
		if errMigrate := app.Migrate(ctx, opts); errMigrate != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", errMigrate)
			os.Exit(1)
		}
		log.Info("migrations applied")
		return
	}

	if errRun := app.RunServer(ctx, opts); errRun != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", errRun)
		os.Exit(1)
	}
}
