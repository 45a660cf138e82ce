package router

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinebook/internal/booking"
	"github.com/iliyamo/cinebook/internal/catalog"
	"github.com/iliyamo/cinebook/internal/config"
	"github.com/iliyamo/cinebook/internal/handler"
	"github.com/iliyamo/cinebook/internal/logger"
	"github.com/iliyamo/cinebook/internal/middleware"
	"github.com/iliyamo/cinebook/internal/service"
	"github.com/iliyamo/cinebook/internal/session"
)

// Deps is everything the HTTP layer is built from.  Redis may be nil, in
// which case caching and rate limiting are off.
type Deps struct {
	Cfg       config.Config
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
	Sessions  *session.Manager
	Desks     *booking.Registry
	Catalog   *catalog.Catalog
	Rotator   *catalog.Rotator
	Weather   handler.WeatherClient
	Publisher service.BookingPublisher
	Log       *logger.Logger
	Now       func() time.Time
}

// New builds the Echo instance with every route registered.
func New(d Deps) *echo.Echo {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(d.Log))

	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis)
	cache := middleware.NewRedisCache(d.Cache, d.Redis)
	live := middleware.RequireSession(d.Sessions)

	weatherH := handler.NewWeatherHandler(d.Weather, d.Log)
	authH := handler.NewAuthHandler(d.Cfg, d.Sessions, d.Desks, d.Log)
	authH.OnLogout = weatherH.Forget
	d.Sessions.OnEvict(func(slot string) {
		d.Desks.Drop(slot)
		weatherH.Forget(slot)
	})

	RegisterRoutes(e)
	RegisterAuth(e, authH, d.Cfg.JWTSecret, limit, live)
	RegisterWeatherRelay(e, weatherH)

	v1 := e.Group("/v1", middleware.JWTAuth(d.Cfg.JWTSecret), live)
	RegisterBrowse(v1, handler.NewBrowseHandler(d.Catalog, d.Rotator, d.Now), cache)
	RegisterBooking(v1, handler.NewBookingHandler(d.Desks, d.Publisher, d.Log), limit)
	RegisterWeather(v1, weatherH)
	return e
}
