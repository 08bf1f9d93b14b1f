// Command spotwork-collect runs the offline dataset collection: one
// Overpass pull per category and city, plus the open-data library
// export, written as GeoJSON files for the interactive app.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/JeromeFabre77/SpotWork/internal/collect"
	"github.com/JeromeFabre77/SpotWork/internal/core/httpclient"
	"github.com/JeromeFabre77/SpotWork/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	outDir := flag.String("out", "data", "output directory for dataset files")
	overpassURL := flag.String("overpass", collect.DefaultOverpassURL, "overpass interpreter endpoint")
	withOpenData := flag.Bool("opendata", true, "also fetch the open-data library export")
	flag.Parse()

	zl := logger.Build(logger.Config{
		Level:     getenvDefault("LOG_LEVEL", "info"),
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "collect",
	}, os.Stdout)
	log := logger.NewSlog(&zl)

	runID := uuid.NewString()
	log.Info("collection run starting", "run_id", runID, "out", *outDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := httpclient.NewOutbound()
	overpass := collect.NewOverpassClient(*overpassURL, client, log)
	cities := collect.FranceCities()

	failed := 0
	for _, spec := range []collect.CategorySpec{
		collect.CoworkingSpec(),
		collect.CafeSpec(),
		collect.LibrarySpec(),
	} {
		fc, err := overpass.FetchAll(ctx, spec, cities)
		if err != nil {
			log.Error("category collection failed", "run_id", runID, "spot_type", spec.SpotType, "err", err)
			failed++
			continue
		}
		if err := collect.SaveFile(*outDir, spec.Filename, fc); err != nil {
			log.Error("save failed", "run_id", runID, "file", spec.Filename, "err", err)
			failed++
			continue
		}
		log.Info("category saved",
			"run_id", runID,
			"spot_type", spec.SpotType,
			"file", spec.Filename,
			"features", len(fc.Features))
	}

	if *withOpenData {
		od := collect.NewOpenDataClient(client, log)
		fc, err := od.FetchExport(ctx, collect.LibrariesIDFURL)
		if err != nil {
			log.Error("open-data export failed", "run_id", runID, "err", err)
			failed++
		} else if err := collect.SaveFile(*outDir, "bibliotheques.geojson", fc); err != nil {
			log.Error("save failed", "run_id", runID, "file", "bibliotheques.geojson", "err", err)
			failed++
		} else {
			log.Info("open-data export saved", "run_id", runID, "features", len(fc.Features))
		}
	}

	if failed > 0 {
		log.Error("collection run finished with failures", "run_id", runID, "failed", failed)
		return 1
	}
	log.Info("collection run finished", "run_id", runID)
	return 0
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
