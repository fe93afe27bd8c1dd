package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/commands"
	"hrm/backend/internal/pkg/config"
	"hrm/backend/internal/pkg/repository/mongodb"
	"hrm/backend/internal/router"
	"hrm/backend/internal/service/mail"

	"github.com/ardanlabs/conf"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, commands.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := config.Usage()
			if err != nil {
				return errors.Wrap(err, "generating usage")
			}
			fmt.Println(usage)
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}

	log := newLogger(cfg.Production())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mongodb.New(ctx, mongodb.Config{
		URI:            cfg.Mongo.URI,
		Name:           cfg.Mongo.Name,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Error("mongo close", "error", err)
		}
	}()

	switch cmd := cfg.Args.Num(0); cmd {
	case "", "serve":
		return serve(ctx, cfg, db, log)
	case "migrate":
		return commands.Migrate(ctx, db, log)
	case "seed-admin":
		return commands.SeedAdmin(ctx, db, log, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	default:
		return errors.Errorf("unknown command %q (serve, migrate, seed-admin)", cmd)
	}
}

func serve(ctx context.Context, cfg config.Config, db *mongodb.Database, log *slog.Logger) error {
	log.Info("starting", "config", cfg.String())

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := os.MkdirAll(cfg.Media.Dir, 0o755); err != nil {
		return errors.Wrap(err, "creating media dir")
	}

	a, err := auth.New(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	var redisDB *redis.Client
	if cfg.Redis.Addr != "" {
		redisDB = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisDB.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return errors.Wrap(err, "pinging redis")
		}
		defer func() {
			if err := redisDB.Close(); err != nil {
				log.Error("redis close", "error", err)
			}
		}()
	} else {
		log.Warn("redis not configured, login throttling disabled")
	}

	mailer := mail.New(mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	})
	if mailer == nil {
		log.Warn("smtp not configured, mail notifications disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app, err := newApp(ctx, cfg, db, redisDB, a, mailer, registry, log)
	if err != nil {
		return err
	}

	server := app.Server(cfg.Web.Address, cfg.Web.ReadTimeout, cfg.Web.WriteTimeout)

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("http listening", "address", cfg.Web.Address)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
		log.Info("shutdown started")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		_ = server.Close()
		return errors.Wrap(err, "graceful shutdown")
	}
	log.Info("shutdown complete")

	return nil
}

// newApp ensures the indexes the repositories rely on, such as the
// one-check-in-per-day constraint, and mounts the routes.
func newApp(ctx context.Context, cfg config.Config, db *mongodb.Database, redisDB *redis.Client, a *auth.Auth, mailer *mail.Mailer, registry *prometheus.Registry, log *slog.Logger) (*web.App, error) {
	if err := commands.Migrate(ctx, db, log); err != nil {
		return nil, err
	}

	app := web.NewApp(log, cfg.Production())
	router.NewRouter(app, db, redisDB, a, mailer, registry, cfg).Init()

	return app, nil
}

func newLogger(production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
