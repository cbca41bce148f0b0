package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/util"
)

// statusNotReady is returned instead of 503 so load balancers can tell it apart from a
// crashed process.
const statusNotReady = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness check
// This endpoint returns 200 when our Service is ready to serve traffic (i.e. the RPC
// endpoint answers).
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if !s.Ready() {
			util.LogFromContext(ctx).Warn().Msg("Readiness check failed, server is not fully initialized")
			return c.String(statusNotReady, "Not ready.")
		}

		if _, err := s.Chain.BlockNumber(ctx); err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Msg("Readiness check failed, RPC endpoint unreachable")
			return c.String(statusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
