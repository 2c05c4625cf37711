package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/berlivn/eriflex-api/internal/application/analytics"
	"github.com/berlivn/eriflex-api/internal/application/assets"
	"github.com/berlivn/eriflex-api/internal/application/auth"
	"github.com/berlivn/eriflex-api/internal/application/calc"
	"github.com/berlivn/eriflex-api/internal/application/catalog"
	"github.com/berlivn/eriflex-api/internal/application/quote"
	"github.com/berlivn/eriflex-api/internal/application/search"
	"github.com/berlivn/eriflex-api/internal/application/usecase"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

// RouterDeps dependencies of the router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	AnalyticsUC *analytics.AnalyticsUseCase
	CatalogUC   *catalog.CatalogUseCase
	CalcUC      *calc.CalcUseCase
	SearchUC    *search.SearchUseCase
	AssetUC     *assets.AssetUseCase
	QuoteUC     *quote.QuoteUseCase
	JWTSecret   string
	RateRPS     float64
	RateBurst   int
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	authMW := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleAdmin)
	selfOrAdmin := RequireSelfOrRole("id", entity.RoleAdmin)
	limited := RateLimitPerUser(deps.RateRPS, deps.RateBurst)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Users (admin, except self reads and quota consumption)
	userHandler := NewUserHandler(deps.UserUC)
	users := app.Group("/api/users", authMW)
	users.Get("/", admin, userHandler.List)
	users.Post("/", admin, userHandler.Create)
	users.Get("/:id", selfOrAdmin, userHandler.GetByID)
	users.Put("/:id", admin, userHandler.Update)
	users.Delete("/:id", admin, userHandler.Delete)
	users.Post("/:id/increment_search", selfOrAdmin, userHandler.IncrementSearch)
	users.Get("/:id/daily_search_limit", selfOrAdmin, userHandler.DailySearchLimit)
	users.Post("/:id/decrement_search_limit", admin, userHandler.DecrementSearchLimit)

	// Admin reports
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	adminGroup := app.Group("/admin", authMW, admin)
	adminGroup.Get("/analytics", analyticsHandler.Overview)
	adminGroup.Get("/search-logs", analyticsHandler.SearchLogs)
	adminGroup.Get("/search-logs/:user_id", analyticsHandler.UserSearchLogs)

	api := app.Group("/api")

	// Public reads
	assetHandler := NewAssetHandler(deps.AssetUC)
	searchHandler := NewSearchHandler(deps.SearchUC)
	api.Get("/getImage", assetHandler.GetImage)
	api.Get("/getFile", assetHandler.GetFile)
	api.Get("/options", searchHandler.Options)

	// Catalog
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/getComponents", authMW, catalogHandler.GetComponents)
	api.Get("/getComponentsList", authMW, catalogHandler.GetComponentsList)
	api.Post("/createComponent", authMW, admin, catalogHandler.CreateComponent)
	api.Post("/updateComponent", authMW, admin, catalogHandler.UpdateComponent)
	api.Delete("/deleteComponent", authMW, admin, catalogHandler.DeleteComponent)

	// Calculation and search
	calcHandler := NewCalcHandler(deps.CalcUC)
	api.Post("/calcExcel", authMW, limited, calcHandler.CalcExcel)
	api.Get("/sendAspExcel", authMW, admin, limited, calcHandler.SendAspExcel)
	api.Post("/queryBusbar", authMW, limited, searchHandler.QueryBusbar)

	// Assets
	api.Get("/components/:id/assets", authMW, assetHandler.ComponentAssets)
	api.Post("/uploadImages", authMW, admin, assetHandler.UploadImages)
	api.Post("/uploadFiles", authMW, admin, assetHandler.UploadFiles)
	api.Delete("/deleteImage", authMW, admin, assetHandler.DeleteImage)
	api.Delete("/deleteFile", authMW, admin, assetHandler.DeleteFile)

	// Quotes
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	api.Post("/quotes/pdf", authMW, quoteHandler.PDF)
}
