package nft

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util"
)

func PostMintRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1NFT.POST("/mint", postMintHandler(s))
}

func postMintHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.NFT == nil {
			return httperrors.ErrNFTNotConfigured
		}
		if s.Transfers.Signer() == nil {
			return httperrors.ErrUnauthenticatedMint
		}

		outcome := s.NFT.Mint(c.Request().Context())

		return util.ValidateAndReturn(c, outcomeStatus(outcome.Success), dto.NewOutcome(outcome))
	}
}

func outcomeStatus(success bool) int {
	if success {
		return http.StatusOK
	}

	return http.StatusUnprocessableEntity
}
