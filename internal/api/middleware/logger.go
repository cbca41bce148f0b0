package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/chapool/magic-wallet/internal/util"
)

// Logger attaches a request scoped zerolog logger, tagged with the request id, to the
// request context and logs each finished request.
func Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()

			requestID := res.Header().Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = req.Header.Get(echo.HeaderXRequestID)
			}

			logger := log.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()
			ctx := logger.WithContext(req.Context())
			if requestID != "" {
				ctx = util.WithRequestID(ctx, requestID)
			}
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			util.LogFromContext(ctx).Info().
				Int("status", res.Status).
				Dur("duration", time.Since(start)).
				Msg("Request handled")

			return nil
		}
	}
}
