package http

import (
	"net/http"
	"strings"
	"time"

	"shopsecure/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const principalKey = "principal"

// authenticate requires a valid bearer token and stores the principal on the context.
func authenticate(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			principal, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := principalFrom(c)
		if err != nil {
			return err
		}
		if err = principal.RequireAdmin(); err != nil {
			return err
		}
		return next(c)
	}
}

func principalFrom(c echo.Context) (user.Principal, error) {
	principal, ok := c.Get(principalKey).(user.Principal)
	if !ok {
		return user.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return principal, nil
}

// RateLimit configures the per-user token bucket of a route.
type RateLimit struct {
	Every time.Duration
	Burst int
}

// limiterIdleTTL is how long an idle user's bucket is kept in memory.
const limiterIdleTTL = 10 * time.Minute

// perUserRateLimit limits requests per authenticated user with echo's
// in-memory token buckets. It must run after authenticate.
//
// Parameters:
//   - cfg: refill interval and burst of each user's bucket
//
// Returns a middleware that answers 429 once the caller's bucket is empty.
func perUserRateLimit(cfg RateLimit) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(cfg.Every),
		Burst:     cfg.Burst,
		ExpiresIn: limiterIdleTTL,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			principal, err := principalFrom(c)
			if err != nil {
				return "", err
			}
			return principal.UserID.String(), nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return err
		},
		DenyHandler: func(_ echo.Context, _ string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many passcode requests").SetInternal(err)
		},
	})
}
