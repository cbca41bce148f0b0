package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/handlers"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/api/middleware"
)

// Init builds the echo instance with its middleware chain and route groups and attaches
// all handlers.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.HTTPErrorHandler = httperrors.HTTPErrorHandler

	s.Echo.Pre(echoMiddleware.RemoveTrailingSlash())
	s.Echo.Use(echoMiddleware.Recover())
	s.Echo.Use(echoMiddleware.RequestID())
	s.Echo.Use(middleware.Logger())
	s.Echo.Use(echoMiddleware.BodyLimit("1M"))

	s.Router = &api.Router{
		Routes:     nil,
		Root:       s.Echo.Group(""),
		Management: s.Echo.Group("/-"),
	}

	v1 := s.Echo.Group("/api/v1")
	s.Router.APIV1Transfers = v1.Group("/transfers")
	s.Router.APIV1Wallet = v1.Group("/wallet")
	s.Router.APIV1NFT = v1.Group("/nft")

	handlers.AttachAllRoutes(s)

	log.Debug().Int("routes", len(s.Router.Routes)).Msg("Routes attached")
}
