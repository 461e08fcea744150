package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// TokenHeader carries the shared secret of internal callers.
const TokenHeader = "X-Internal-Token"

// RouterConfig holds the cross-cutting HTTP settings.
type RouterConfig struct {
	// InternalToken guards every API route. Empty disables the check.
	InternalToken string
	CORSOrigins   []string
	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer
}

// LatencyObserver receives one observation per served request.
type LatencyObserver interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

// openPaths are served without the internal token.
var openPaths = map[string]struct{}{
	"/health":    {},
	"/metrics":   {},
	"/swagger/*": {},
}

// NewRouter assembles the echo instance: middleware, contract validation,
// API routes, /metrics and /swagger.
func NewRouter(cfg RouterConfig, server ServerInterface, contract *Contract, observer LatencyObserver, logger *zap.Logger) (*echo.Echo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.ERROR)
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(requestLogger(observer, logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, TokenHeader},
	}))
	e.Use(internalTokenAuth(cfg.InternalToken))
	e.Use(contract.ValidateRequests())

	RegisterHandlers(e, server)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if err := contract.RegisterDocs(); err != nil {
		return nil, err
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func internalTokenAuth(token string) echo.MiddlewareFunc {
	expected := []byte(token)

	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "header:" + TokenHeader,
		Skipper: func(c echo.Context) bool {
			if token == "" {
				return true
			}
			_, open := openPaths[c.Path()]
			return open
		},
		Validator: func(key string, _ echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), expected) == 1, nil
		},
		ErrorHandler: func(err error, _ echo.Context) error {
			return &apiError{Status: http.StatusUnauthorized, Detail: "Unauthorized", Cause: err}
		},
	})
}

func requestLogger(observer LatencyObserver, logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			route := v.RoutePath
			if route == "" {
				route = "unmatched"
			}
			if observer != nil {
				observer.ObserveHTTPRequest(v.Method, route, v.Status, v.Latency)
			}

			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
