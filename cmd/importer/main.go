package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"web-larek/internal/config"
	"web-larek/internal/db"
	"web-larek/internal/importer"
	"web-larek/internal/logging"
	productrepo "web-larek/internal/repository/product"
	productsvc "web-larek/internal/service/product"
)

func main() {
	var (
		filePath string
		envFile  string
	)
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV (id,title,description,price,image,category)")
	flag.StringVar(&envFile, "env", ".env", "optional dotenv file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(envFile)
	logger := logging.New("importer", cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open file")
	}
	defer f.Close()

	svc := productsvc.New(productrepo.NewPostgres(pool, &logger))
	imp := importer.NewCSVImporter(f, svc, &logger)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}

	fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
