package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"gopingpong-app/internal/kvstore"
	"gopingpong-app/internal/notify"
	"gopingpong-app/internal/store"
	"gopingpong-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	onLambda := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
	if !onLambda {
		_ = godotenv.Load(".env", ".env.local")
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	var appStore store.Store
	if dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN")); dsn != "" {
		pgStore, err := store.NewPostgresStore(dsn, store.PostgresOptions{
			MigrationsDir: os.Getenv("POSTGRES_MIGRATIONS_DIR"),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("postgres store")
		}
		appStore = pgStore
		log.Info().Msg("using postgres store")
	} else if dbPath := strings.TrimSpace(os.Getenv("DB_PATH")); dbPath != "" {
		sqliteStore, err := store.NewSQLiteStore(dbPath, store.SQLiteOptions{
			MigrationsDir: os.Getenv("DB_MIGRATIONS_DIR"),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("sqlite store")
		}
		appStore = sqliteStore
		log.Info().Str("path", dbPath).Msg("using sqlite store")
	} else {
		appStore = store.NewMemoryStore()
		log.Info().Msg("using in-memory store")
	}

	var kv kvstore.KVStore
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		redisKV, err := kvstore.NewRedis(addr, os.Getenv("REDIS_PASSWORD"), db)
		if err != nil {
			log.Fatal().Err(err).Msg("redis")
		}
		kv = redisKV
		log.Info().Str("addr", addr).Msg("standings cache on redis")
	}

	var hub *notify.Hub
	if !onLambda {
		hub = notify.NewHub()
	}

	server := web.NewServer(appStore, kv, hub)

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}).Handler)
	r.Mount("/", server.Routes())

	if onLambda {
		log.Info().Msg("starting in lambda mode")
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("listening")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
