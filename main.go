package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kipackjeong/wordbingo-server/internal/dict"
	"github.com/kipackjeong/wordbingo-server/internal/httpserver"
	"github.com/kipackjeong/wordbingo-server/internal/results"
	"github.com/kipackjeong/wordbingo-server/internal/round"
	"github.com/kipackjeong/wordbingo-server/internal/store"
	"github.com/kipackjeong/wordbingo-server/internal/validate"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/wordbingo.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db, getEnv("SQL_DIR", "sql")); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	dc := dict.NewCache(dictClient(), db)
	res := results.NewStore(db)
	hub := httpserver.NewHub()

	mgr := round.NewManager(store.NewMemory(), hub, res, validate.New(dc), round.Config{
		DebounceDelay: envDuration("DEBOUNCE", 0),
		RoundDuration: envDuration("ROUND_DURATION", 0),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
	})

	srv := httpserver.New(mgr, res, dc, hub)
	port := getEnv("PORT", "5180")
	log.Info().Str("port", port).Str("dictionary", dc.Name()).Msg("starting wordbingo server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// dictClient picks the lookup backend: the remote dictionary API when
// DICT_BASE_URL is set, the bundled word list otherwise.
func dictClient() dict.Client {
	if base := os.Getenv("DICT_BASE_URL"); base != "" {
		return dict.NewHTTP(dict.Config{
			BaseURL: base,
			APIKey:  os.Getenv("DICT_API_KEY"),
		})
	}
	s := dict.NewStatic()
	log.Info().Int("entries", s.Size()).Msg("no DICT_BASE_URL, using bundled dictionary")
	return s
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
