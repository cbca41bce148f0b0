package nft

import (
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util"
)

func PutApprovalRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1NFT.PUT("/approval", putApprovalHandler(s))
}

// putApprovalHandler grants (approved=true) or revokes the operator's approval for all of
// the signer's tokens.
func putApprovalHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.NFT == nil {
			return httperrors.ErrNFTNotConfigured
		}
		if s.Transfers.Signer() == nil {
			return httperrors.ErrUnauthenticatedApproval
		}

		var body dto.ApprovalRequest
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		outcome := s.NFT.SetApprovalForAll(c.Request().Context(), swag.StringValue(body.Operator), swag.BoolValue(body.Approved))

		return util.ValidateAndReturn(c, outcomeStatus(outcome.Success), dto.NewOutcome(outcome))
	}
}
