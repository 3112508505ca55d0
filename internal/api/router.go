package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/smartaviation/site/docs"
	"github.com/smartaviation/site/internal/api/handler"
	"github.com/smartaviation/site/internal/api/metrics"
	"github.com/smartaviation/site/internal/api/middleware"
	"github.com/smartaviation/site/internal/core/ports"
)

// Services bundles the core services the HTTP layer depends on.
type Services struct {
	Auth     ports.AuthService
	Content  ports.ContentService
	Products ports.ProductService
	Requests ports.RequestService
	Users    ports.UserService
}

// Options tunes transport concerns that come from configuration.
type Options struct {
	UploadDir      string
	MaxUploadBytes int64
	BodyLimit      string
	CORSOrigins    []string
	Probes         []handler.Probe
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if opts.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimitWithConfig(echomiddleware.BodyLimitConfig{
			Limit:   opts.BodyLimit,
			Skipper: isProductUpload,
		}))
	}
	uploadLimit := echomiddleware.BodyLimit(productFormLimit(opts.MaxUploadBytes))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	contentHandler := handler.NewContentHandler(svc.Content)
	productHandler := handler.NewProductHandler(svc.Products, opts.MaxUploadBytes)
	requestHandler := handler.NewRequestHandler(svc.Requests)
	userHandler := handler.NewUserHandler(svc.Users)
	publicHandler := handler.NewPublicHandler(svc.Content, svc.Requests, log)
	requireAuth := middleware.Auth(svc.Auth)

	// --- API ---
	g := e.Group("/api")
	g.POST("/login", authHandler.Login)
	g.POST("/logout", authHandler.Logout, requireAuth)

	g.GET("/content", contentHandler.Get)
	g.PUT("/hero", contentHandler.UpdateHero, requireAuth)
	g.PUT("/banner", contentHandler.UpdateBanner, requireAuth)

	g.GET("/products", productHandler.List)
	g.POST("/products", productHandler.Create, requireAuth, uploadLimit)
	g.DELETE("/products/:id", productHandler.Delete, requireAuth)

	g.POST("/requests", requestHandler.Submit)
	g.GET("/requests", requestHandler.List, requireAuth)
	g.PATCH("/requests/:id", requestHandler.UpdateStatus, requireAuth)

	g.GET("/users", userHandler.List, requireAuth)
	g.POST("/users", userHandler.Create, requireAuth)
	g.DELETE("/users/:id", userHandler.Delete, requireAuth)

	// --- Uploaded images ---
	e.Static("/uploads", opts.UploadDir)

	// --- Public site ---
	e.GET("/", publicHandler.Page)
	e.POST("/contato", publicHandler.Contact)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(opts.Probes...).Readiness)

	// --- Observability ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// Product forms carry four images and get their own limit on the route.
func isProductUpload(c echo.Context) bool {
	return c.Request().Method == http.MethodPost && c.Path() == "/api/products"
}

const (
	defaultMaxUploadBytes = 10 << 20
	formOverheadBytes     = 64 << 10
)

// productFormLimit bounds a whole product form: four files at the per-file
// limit plus room for the text fields and part headers.
func productFormLimit(maxUploadBytes int64) string {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	total := 4*maxUploadBytes + formOverheadBytes
	return fmt.Sprintf("%dK", (total+1023)/1024)
}
