package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util"
)

func GetBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/balance", getBalanceHandler(s))
}

func getBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		signer := s.Transfers.Signer()
		if signer == nil {
			return httperrors.ErrUnauthenticated
		}

		balance, err := s.Transfers.CurrentBalance(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to get balance")
			return httperrors.NewHTTPErrorWithDetail(http.StatusBadGateway, httperrors.TypeGeneric, "Failed to get balance", err.Error())
		}

		return util.ValidateAndReturn(c, http.StatusOK, &dto.BalanceResponse{
			Address: signer.Address().Hex(),
			Balance: balance,
		})
	}
}
