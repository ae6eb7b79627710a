package main

import (
	"context"
	"flag"

	"web-larek/internal/config"
	"web-larek/internal/db"
	"web-larek/internal/logging"
	productrepo "web-larek/internal/repository/product"
	productsvc "web-larek/internal/service/product"
	"web-larek/internal/seed"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	logger := logging.New("seed", cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	svc := productsvc.New(productrepo.NewPostgres(pool, &logger))
	count, err := seed.Apply(ctx, svc)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed apply")
	}

	logger.Info().Int("products", count).Msg("seed applied")
}
