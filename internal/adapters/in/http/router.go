package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// bodyLimit leaves room for multipart overhead around the largest image.
const bodyLimit = "11M"

// RouterConfig carries the HTTP-specific settings.
type RouterConfig struct {
	UploadDir      string
	PasscodeRate   RateLimit
	AllowedOrigins []string
}

// NewRouter registers every route, the error handler and the middleware chain.
func NewRouter(
	server *Server,
	tokens TokenParser,
	doc *OpenAPIDoc,
	cfg RouterConfig,
	logger *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = newErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(middleware.BodyLimit(bodyLimit))
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", doc.ServeJSON)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.json")))
	if cfg.UploadDir != "" {
		e.Static(UploadsPath, cfg.UploadDir)
	}

	auth := authenticate(tokens)
	limiter := perUserRateLimit(cfg.PasscodeRate)

	api := e.Group("/api/v1")
	api.POST("/signup", server.SignUp)
	api.POST("/login", server.Login)
	api.POST("/returns", server.SubmitReturn)
	api.POST("/feedback", server.SubmitFeedback)

	api.POST("/orders", server.PlaceOrder, auth)
	api.POST("/orders/:code/reference-image", server.RegisterReferenceImage, auth, requireAdmin)
	api.POST("/otp/send", server.SendPasscode, auth, limiter)
	api.POST("/otp/verify", server.VerifyPasscode, auth)
	api.GET("/admin/dashboard-stats", server.DashboardStats, auth, requireAdmin)

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}
