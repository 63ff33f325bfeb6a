package bootstrap

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/solarsmart/account-service/internal/application/account"
	"github.com/solarsmart/account-service/internal/config"
	"github.com/solarsmart/account-service/internal/domain"
	"github.com/solarsmart/account-service/internal/infrastructure/db/postgres"
	"github.com/solarsmart/account-service/internal/infrastructure/memory"
	"github.com/solarsmart/account-service/internal/infrastructure/messaging/rabbitmq"
	redisinfra "github.com/solarsmart/account-service/internal/infrastructure/redis"
	"github.com/solarsmart/account-service/internal/infrastructure/security"
	"github.com/solarsmart/account-service/internal/logger"
	http_handlers "github.com/solarsmart/account-service/internal/transport/http/handlers"
	"github.com/solarsmart/account-service/internal/transport/http/middleware"
	"github.com/solarsmart/account-service/internal/transport/http/response"
	"github.com/solarsmart/account-service/internal/transport/http/router"
)

// ClosingPublisher is an event publisher with a lifecycle.
type ClosingPublisher interface {
	account.EventPublisher
	Close() error
}

// Deps are the injectable constructors. Build uses Default() in production;
// tests swap individual fields for fakes.
type Deps struct {
	LoadConfig   func() (*config.Config, error)
	NewDB        func(dsn string) (*sql.DB, error)
	NewRedis     func(addr, password string, db int) *redisinfra.Client
	NewPublisher func(url string) (ClosingPublisher, error)
	NewRouter    func(deps router.Deps) (http.Handler, error)
}

func Default() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRedis:   redisinfra.New,
		NewPublisher: func(url string) (ClosingPublisher, error) {
			return rabbitmq.NewPublisher(url)
		},
		NewRouter: router.New,
	}
}

// App is the assembled service: a ready-to-listen HTTP server plus the
// teardown for everything behind it.
type App struct {
	Config *config.Config
	Server *http.Server

	cleanup []func()
}

// Close releases resources in reverse acquisition order.
func (a *App) Close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	a.cleanup = nil
}

// Build wires config, storage, security, messaging, and the HTTP stack.
// Postgres is mandatory; redis and rabbit degrade gracefully when absent so a
// laptop checkout runs with nothing but a database.
func Build(deps Deps) (*App, error) {
	app := &App{}
	ok := false
	defer func() {
		if !ok {
			app.Close()
		}
	}()

	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, err
	}
	app.cleanup = append(app.cleanup, func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	store := postgres.NewUserStore(db)

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// Redis is best effort: an unreachable instance disables throttling
	// instead of blocking startup.
	var limiter *redisinfra.FixedWindowLimiter
	if cfg.RedisAddr != "" {
		rc := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).
				Msg("redis unreachable, rate limiting disabled")
			_ = rc.Close()
		} else {
			app.cleanup = append(app.cleanup, func() { _ = rc.Close() })
			limiter = redisinfra.NewFixedWindowLimiter(rc)
		}
	}

	var pub account.EventPublisher = memory.NewNoopPublisher()
	if cfg.RabbitURL != "" {
		p, perr := deps.NewPublisher(cfg.RabbitURL)
		switch {
		case perr == nil:
			app.cleanup = append(app.cleanup, func() { _ = p.Close() })
			pub = p
		case cfg.Env == "dev":
			logger.Logger.Warn().Err(perr).Msg("rabbitmq unavailable, events disabled")
		default:
			return nil, perr
		}
	}

	if cfg.Env == "dev" {
		postgres.SeedUsers(ctx, store, hasher)
	}

	svc := account.NewService(store, hasher, signer, pub, account.Config{
		TokenTTL: cfg.TokenTTL,
	})

	authMW := middleware.Auth(signer, response.WriteError)
	adminMW := middleware.RequireAtLeast(string(domain.RoleAdmin), response.WriteError)

	rl := func(route string, limit int) func(http.Handler) http.Handler {
		if limiter == nil || limit <= 0 {
			return nil
		}
		return middleware.RateLimitFixedWindow(limiter, middleware.FixedWindowConfig{
			RouteKey: route,
			Limit:    limit,
			Window:   time.Minute,
		}, response.WriteError)
	}

	handler, err := deps.NewRouter(router.Deps{
		Health:          http_handlers.NewHealthHandler(db),
		Account:         http_handlers.NewAccountHandler(svc),
		AuthMW:          authMW,
		AdminMW:         adminMW,
		RegisterLimitMW: rl("account.register", cfg.RegisterRateLimit),
		LoginLimitMW:    rl("account.login", cfg.LoginRateLimit),
		Global: []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.CORS(cfg.CORSAllowedOrigins),
		},
	})
	if err != nil {
		return nil, err
	}

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	ok = true
	return app, nil
}
