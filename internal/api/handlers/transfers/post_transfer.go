package transfers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util"
)

func PostTransferRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transfers.POST("", postTransferHandler(s))
}

// postTransferHandler sends one transfer and waits for its receipt. A failed transfer is
// answered with 422 and its classified kind.
func postTransferHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if s.Transfers.Signer() == nil {
			return httperrors.ErrUnauthenticated
		}

		var body dto.TransferRequest
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		outcome := s.Transfers.Transfer(ctx, body.ToRequest())

		status := http.StatusOK
		if !outcome.Success {
			status = http.StatusUnprocessableEntity
		}

		return util.ValidateAndReturn(c, status, dto.NewOutcome(outcome))
	}
}
