package main // Entry point package

import (
	"context"   // shutdown deadline
	"errors"    // http.ErrServerClosed check
	"fmt"       // log messages
	"log"       // fatal startup errors before the logger exists
	"net/http"  // server closed sentinel
	"os"        // exit codes
	"os/signal" // SIGINT/SIGTERM handling
	"syscall"   // SIGTERM
	"time"      // timeouts

	"github.com/iliyamo/cinebook/internal/booking" // per-session booking desks
	"github.com/iliyamo/cinebook/internal/catalog" // compiled-in movies and theatres
	"github.com/iliyamo/cinebook/internal/config"  // env configuration
	"github.com/iliyamo/cinebook/internal/logger"  // structured logging
	"github.com/iliyamo/cinebook/internal/queue"   // booking event consumer
	"github.com/iliyamo/cinebook/internal/router"  // HTTP wiring
	"github.com/iliyamo/cinebook/internal/service" // booking event publisher
	"github.com/iliyamo/cinebook/internal/session" // session persistence
	"github.com/iliyamo/cinebook/internal/weather" // OpenWeather client
)

func main() {
	if err := config.LoadDotEnv(); err != nil { // .env is optional; a broken one is not
		log.Fatal(err)
	}
	cfg := config.Load() // Load environment config
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.LogDir, "cinebook")
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Close()

	// Redis backs sessions, the response cache and the rate limiter.  Without
	// it sessions live in memory and the other two are disabled.
	rdb := config.NewRedisClient()
	var store session.Store
	if rdb != nil {
		defer rdb.Close()
		store = session.NewRedisStore(rdb, time.Duration(cfg.SessionTTL)*time.Hour)
		lg.Info("REDIS", "sessions persisted in redis")
	} else {
		store = session.NewMemoryStore()
		lg.Warn("REDIS", "redis unavailable; sessions kept in memory, cache and rate limit off")
	}

	sessions := session.NewManager(store)
	cat := catalog.New()
	rot := catalog.NewRotator(cat.HeroSlides(), catalog.DefaultRotateEvery)

	var pub service.BookingPublisher = service.NopPublisher{}
	var consumer *queue.Consumer
	if cfg.AMQPURL != "" {
		pub = service.NewAMQPPublisher(cfg.AMQPURL, lg)
		consumer = queue.NewConsumer(cfg.AMQPURL, cfg.LogDir, lg)
	} else {
		lg.Info("QUEUE", "booking events disabled")
	}
	if cfg.WeatherAPIKey == "" {
		lg.Warn("WEATHER", "OPENWEATHER_API_KEY not set; weather calls will fail")
	}

	e := router.New(router.Deps{
		Cfg:       cfg,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Redis:     rdb,
		Sessions:  sessions,
		Desks:     booking.NewRegistry(func() *booking.Desk { return booking.NewDesk(cat, nil, nil) }),
		Catalog:   cat,
		Rotator:   rot,
		Weather:   weather.NewClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL, nil),
		Publisher: pub,
		Log:       lg,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go rot.Run(ctx)
	// A slot idle for a full token lifetime can only come back through a new login.
	go sessions.RunSweeper(ctx, time.Minute, time.Duration(cfg.AccessTTLMin)*time.Minute)
	if consumer != nil {
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				lg.Error("QUEUE", fmt.Sprintf("consumer stopped: %v", err))
			}
		}()
	}

	addr := ":" + cfg.Port // Address string with port
	go func() {
		lg.Info("SERVER", fmt.Sprintf("listening on %s (env=%s)", addr, cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("SERVER", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error("SERVER", fmt.Sprintf("shutdown: %v", err))
	}
	lg.Info("SERVER", "stopped")
}
