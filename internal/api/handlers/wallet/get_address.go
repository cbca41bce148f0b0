package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util"
)

func GetAddressRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/address", getAddressHandler(s))
}

func getAddressHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		signer := s.Transfers.Signer()
		if signer == nil {
			return httperrors.ErrUnauthenticated
		}

		response := dto.AddressResponse{Address: signer.Address().Hex()}

		network, err := signer.Provider().Network(ctx)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Network lookup failed, returning address only")
		} else {
			response.Network = network.Name
			response.ChainID = network.ChainID.String()
		}

		return util.ValidateAndReturn(c, http.StatusOK, &response)
	}
}
