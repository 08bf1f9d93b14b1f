package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type DatasetCfg struct {
	CoworkingURL string
	LibrariesURL string
	CafesURL     string
	FetchTimeout time.Duration
}

type Config struct {
	Addr             string
	LogLevel         string
	WebDir           string
	DataDir          string
	Dataset          DatasetCfg
	PageSize         int
	IndexRes         int
	FilterDebounce   time.Duration
	SearchDebounce   time.Duration
	ViewportDebounce time.Duration
	FilterMemoSize   int
}

func FromEnv() Config {
	dataDir := getenv("DATA_DIR", "data")

	res := getint("H3_INDEX_RES", 8)
	if res < 0 {
		res = 0
	}
	if res > 15 {
		res = 15
	}

	pageSize := getint("PAGE_SIZE", 12)
	if pageSize <= 0 {
		pageSize = 12
	}

	return Config{
		Addr:     getenv("ADDR", ":8090"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		WebDir:   getenv("WEB_DIR", "web"),
		DataDir:  dataDir,
		Dataset: DatasetCfg{
			CoworkingURL: getenv("COWORKING_DATASET", dataDir+"/coworking_france.geojson"),
			LibrariesURL: getenv("LIBRARIES_DATASET", dataDir+"/bibliotheques.geojson"),
			CafesURL:     getenv("CAFES_DATASET", dataDir+"/cofee_france.geojson"),
			FetchTimeout: getduration("DATASET_FETCH_TIMEOUT", 30*time.Second),
		},
		PageSize:         pageSize,
		IndexRes:         res,
		FilterDebounce:   getduration("FILTER_DEBOUNCE", 150*time.Millisecond),
		SearchDebounce:   getduration("SEARCH_DEBOUNCE", 300*time.Millisecond),
		ViewportDebounce: getduration("VIEWPORT_DEBOUNCE", 200*time.Millisecond),
		FilterMemoSize:   getint("FILTER_MEMO_SIZE", 32),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
