// Command seed loads the demo catalog and accounts, or wipes the store with -d.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/Skotchmaster/electro_shop/internal/config"
	"github.com/Skotchmaster/electro_shop/internal/db"
	"github.com/Skotchmaster/electro_shop/internal/logging"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/seed"
)

func main() {
	destroy := flag.Bool("d", false, "destroy all data instead of importing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "command", "seed")
	ctx := logging.IntoContext(context.Background(), logger)

	gdb, err := db.Open(ctx, cfg.DB)
	if err != nil {
		logger.Error("db_open_error", "error", err)
		os.Exit(1)
	}
	defer db.Close(gdb)

	if err := db.Migrate(ctx, gdb); err != nil {
		logger.Error("db_migrate_error", "error", err)
		os.Exit(1)
	}

	s := seed.New(&repo.GormRepo{DB: gdb})
	if *destroy {
		if err := s.Destroy(ctx); err != nil {
			logger.Error("destroy_error", "error", err)
			os.Exit(1)
		}
		logger.Info("data destroyed")
		return
	}

	rep, err := s.Import(ctx)
	if err != nil {
		logger.Error("import_error", "error", err)
		os.Exit(1)
	}
	logger.Info("data imported", "products", rep.Products, "users", rep.Users)
}
