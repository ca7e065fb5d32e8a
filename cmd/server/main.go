package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // stock Echo middleware
	glog "github.com/labstack/gommon/log"           // Echo's own logger levels
	"go.uber.org/zap"

	"github.com/iliyamo/universe-repo/internal/auth"
	"github.com/iliyamo/universe-repo/internal/config"
	"github.com/iliyamo/universe-repo/internal/database"
	"github.com/iliyamo/universe-repo/internal/handler"
	"github.com/iliyamo/universe-repo/internal/logging"
	"github.com/iliyamo/universe-repo/internal/middleware"
	"github.com/iliyamo/universe-repo/internal/queue"
	"github.com/iliyamo/universe-repo/internal/repository"
	"github.com/iliyamo/universe-repo/internal/router"
	"github.com/iliyamo/universe-repo/internal/service"
)

func main() {
	cfg, err := config.Load() // .env (optional) + environment
	if err != nil {
		// no logger yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logging.New(cfg.Env)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	codec, err := auth.NewCodec(cfg.Token)
	if err != nil {
		return err
	}
	resolver := auth.NewResolver(codec)

	users := repository.NewUserRepo(db, cfg.BcryptCost)
	repos := repository.NewRepositoryRepo(db)

	// nil when Redis is unreachable; cache and rate limit then pass through
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn("redis unavailable, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	var events handler.EventPublisher = service.NopPublisher{}
	if cfg.AMQP.PublishEnabled {
		events = service.NewActivityPublisher(cfg.AMQP)
	}
	if cfg.AMQP.ConsumerEnabled {
		go func() {
			if err := queue.StartActivityConsumer(ctx, cfg.AMQP, log); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("activity consumer exited", zap.Error(err))
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	if logging.IsDevelopment(cfg.Env) {
		e.Logger.SetLevel(glog.DEBUG)
	} else {
		e.Logger.SetLevel(glog.WARN)
	}
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))

	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Deps{
		Auth:         handler.NewAuthHandler(users, codec, log),
		Users:        handler.NewUserHandler(users, resolver, log),
		Repositories: handler.NewRepositoryHandler(repos, resolver, events, middleware.NewCacheInvalidator(cfg.Cache, rdb), log),
		Verifier:     codec,
		Cache:        middleware.NewRedisCache(cfg.Cache, rdb, log),
		RateLimit:    middleware.NewTokenBucket(cfg.RateLimit, rdb, log),
	})

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
