package common

import (
	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api"
)

func GetMetricsRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/metrics", getMetricsHandler(s))
}

func getMetricsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Config.Metrics.Enabled || s.Metrics == nil {
			return echo.ErrNotFound
		}

		s.Metrics.Handler().ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
