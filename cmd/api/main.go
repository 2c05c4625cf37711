package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/berlivn/eriflex-api/internal/application/analytics"
	"github.com/berlivn/eriflex-api/internal/application/assets"
	"github.com/berlivn/eriflex-api/internal/application/auth"
	"github.com/berlivn/eriflex-api/internal/application/calc"
	"github.com/berlivn/eriflex-api/internal/application/catalog"
	"github.com/berlivn/eriflex-api/internal/application/quote"
	"github.com/berlivn/eriflex-api/internal/application/search"
	"github.com/berlivn/eriflex-api/internal/application/usecase"
	"github.com/berlivn/eriflex-api/internal/infrastructure/aspexcel"
	infrapdf "github.com/berlivn/eriflex-api/internal/infrastructure/pdf"
	"github.com/berlivn/eriflex-api/internal/infrastructure/postgres"
	"github.com/berlivn/eriflex-api/internal/infrastructure/storage"
	httpRouter "github.com/berlivn/eriflex-api/internal/interfaces/http"
	"github.com/berlivn/eriflex-api/pkg/config"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}
	if len(applied) > 0 {
		log.Info().Strs("migrations", applied).Msg("migrations applied")
	}
	seeded, err := postgres.ApplySeeds(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("apply seeds")
	}
	if len(seeded) > 0 {
		log.Info().Strs("seeds", seeded).Msg("seeds applied")
	}

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	componentRepo := postgres.NewComponentRepository(pool)
	calcRepo := postgres.NewCalcRepository(pool)
	searchLogRepo := postgres.NewSearchLogRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	fileStore, err := storage.NewLocalStore(cfg.Assets.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Assets.Dir).Msg("open asset store")
	}

	calculator := aspexcel.NewClient(aspexcel.Config{
		URL:       cfg.ASPExcel.URL,
		Timeout:   cfg.ASPExcel.Timeout,
		UserAgent: cfg.ASPExcel.UserAgent,
	})

	userUC := usecase.NewUserUseCase(userRepo, searchLogRepo, txRunner, cfg.Quota.DefaultDailyLimit, log.Named("users"))
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, txRunner, userUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Quota.DefaultDailyLimit, log.Named("auth"))
	analyticsUC := analytics.NewAnalyticsUseCase(analyticsRepo, searchLogRepo, userRepo)
	catalogUC := catalog.NewCatalogUseCase(componentRepo, txRunner, log.Named("catalog"))
	calcUC := calc.NewCalcUseCase(calcRepo, calculator, log.Named("calc"))
	searchUC := search.NewSearchUseCase(componentRepo, calcUC, userUC, log.Named("search"), cfg.ASPExcel.Concurrency)
	assetUC := assets.NewAssetUseCase(fileStore, cfg.Assets.RemotePhotoBaseURL, log.Named("assets"))
	quoteUC := quote.NewQuoteUseCase(catalogUC, userUC, infrapdf.NewQuoteRenderer(cfg.App.Name))

	if created, err := authUC.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		log.Error().Err(err).Msg("bootstrap admin")
	} else if !created && cfg.Bootstrap.AdminEmail != "" {
		log.Debug().Str("email", cfg.Bootstrap.AdminEmail).Msg("bootstrap admin already present")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Eriflex configurator API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		AnalyticsUC: analyticsUC,
		CatalogUC:   catalogUC,
		CalcUC:      calcUC,
		SearchUC:    searchUC,
		AssetUC:     assetUC,
		QuoteUC:     quoteUC,
		JWTSecret:   cfg.JWT.Secret,
		RateRPS:     cfg.RateLimit.RPS,
		RateBurst:   cfg.RateLimit.Burst,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}
