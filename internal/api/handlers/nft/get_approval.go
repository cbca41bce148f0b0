package nft

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/transfer"
	"github/chapool/magic-wallet/internal/util"
	"github/chapool/magic-wallet/internal/wallet/address"
)

func GetApprovalRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1NFT.GET("/approval", getApprovalHandler(s))
}

func getApprovalHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if s.NFT == nil {
			return httperrors.ErrNFTNotConfigured
		}

		var params dto.ApprovalQuery
		if err := util.BindAndValidateQueryParams(c, &params); err != nil {
			return err
		}

		if !address.IsValid(params.Operator) {
			return httperrors.NewHTTPError(http.StatusBadRequest, string(transfer.KindInvalidAddress), "Invalid operator address")
		}
		if params.Account != "" && !address.IsValid(params.Account) {
			return httperrors.NewHTTPError(http.StatusBadRequest, string(transfer.KindInvalidAddress), "Invalid account address")
		}

		approved, err := s.NFT.IsApprovedForAll(ctx, params.Account, params.Operator)
		if err != nil {
			if errors.Is(err, transfer.ErrCapabilityUnavailable) {
				return httperrors.ErrUnauthenticated
			}
			log.Error().Err(err).Msg("Failed to check approval")
			return httperrors.NewHTTPErrorWithDetail(http.StatusBadGateway, httperrors.TypeGeneric, "Failed to check approval", err.Error())
		}

		account := params.Account
		if account == "" {
			if signer := s.Transfers.Signer(); signer != nil {
				account = signer.Address().Hex()
			}
		}

		return util.ValidateAndReturn(c, http.StatusOK, &dto.ApprovalResponse{
			Account:  account,
			Operator: params.Operator,
			Approved: approved,
		})
	}
}
