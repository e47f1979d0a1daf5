// Package server assembles the HTTP router shared by the API binary and the
// end-to-end tests.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tally/internal/config"
	"tally/internal/handlers"
	"tally/internal/middleware"
	"tally/internal/services"
)

// Services are the application services the router dispatches to.
type Services struct {
	Portfolio services.PortfolioServicer
	Price     services.PriceServicer
	Ticker    services.TickerServicer
	Capture   services.CaptureServicer
}

// Options configure authentication and capture behavior.
type Options struct {
	JWTSecret      string
	PipelineAPIKey string
	CaptureAllowed func() bool
	Catalog        []config.CatalogEntry
	SeedSymbols    func() ([]string, error)
	Swagger        bool
}

// NewRouter builds the Gin engine with middleware and all routes.
func NewRouter(svcs Services, opts Options) *gin.Engine {
	portfolioHandler := handlers.NewPortfolioHandler(svcs.Portfolio)
	priceHandler := handlers.NewPriceHandler(svcs.Price)
	tickerHandler := handlers.NewTickerHandler(svcs.Ticker, opts.Catalog)
	pipelineHandler := handlers.NewPipelineHandler(svcs.Capture, opts.SeedSymbols)

	captureAllowed := opts.CaptureAllowed
	if captureAllowed == nil {
		captureAllowed = func() bool { return true }
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization", "X-API-Key")
	router.Use(cors.New(corsConfig))

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(opts.PipelineAPIKey))
	pipeline.POST("/capture", middleware.CaptureGuard(captureAllowed), pipelineHandler.Capture)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(opts.JWTSecret))

	protected.GET("/portfolio", portfolioHandler.GetPortfolio)
	protected.PUT("/portfolio", portfolioHandler.SetDisplayCurrency)

	holdings := protected.Group("/holdings")
	holdings.POST("", portfolioHandler.AddHolding)
	holdings.DELETE("/:id", portfolioHandler.RemoveHolding)

	prices := protected.Group("/prices")
	prices.GET("", priceHandler.LatestPrices)
	prices.GET("/:symbol/history", priceHandler.PriceHistory)

	tickers := protected.Group("/tickers")
	tickers.GET("", tickerHandler.ListTickers)
	tickers.POST("", tickerHandler.TrackTicker)

	protected.GET("/symbols", tickerHandler.ListSymbols)

	return router
}
