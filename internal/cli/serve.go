package cli

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursebank-service/internal/app"
	"coursebank-service/internal/config"
	"coursebank-service/internal/infra/memory"
	pgseed "coursebank-service/internal/infra/postgres"
	redisinfra "coursebank-service/internal/infra/redis"
	transport "coursebank-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the question bank server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}
	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + finalPort
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.SeedLoader = memory.NewStaticSeedLoader(memory.DefaultBank())
	if pool != nil {
		loader = pgseed.NewSeedLoader(pool)
	}
	bankTTL := config.Duration(cfg.Bank.CacheTTL, 10*time.Minute)
	seedCache := memory.NewSeedCache(loader, bankTTL)

	seed, err := seedCache.LoadBank(ctx)
	if err != nil || len(seed) == 0 {
		if err != nil {
			log.Printf("seed load failed, using built-in bank: %v", err)
		}
		seed = memory.DefaultBank()
	}

	var kv app.KVStore = memory.NewKVStore()
	if redisClient != nil {
		kv = redisinfra.NewKVStore(redisClient)
	}

	toastTTL := config.Duration(cfg.Toast.TTL, app.DefaultToastTTL)
	notifier := app.NewNotifier(toastTTL)
	bank := app.NewBankService(seed, notifier)
	gate := app.NewModeGate()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	notes := app.NewNotesService(ctx, kv)
	leaderboard := app.NewLeaderboardService(ctx, kv)

	quiz := app.NewQuizEngine(bank, notifier, gate, rnd)
	challenge := app.NewChallengeEngine(bank, leaderboard, notifier, gate, rnd)
	challenge.Configure(cfg.Challenge.PoolSize, cfg.Challenge.QuestionSeconds,
		config.Duration(cfg.Challenge.TickInterval, app.DefaultTickInterval))

	wsHandler := transport.NewWSHandler(bank, quiz, challenge, notes, leaderboard, notifier, baseURL)
	exportHandler := transport.NewExportHandler(bank)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("/export", exportHandler.ServeHTTP)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting coursebank service on :%s (%d questions loaded)", finalPort, len(seed))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	challenge.Exit()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
