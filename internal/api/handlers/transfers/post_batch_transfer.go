package transfers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util"
)

func PostBatchTransferRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transfers.POST("/batch", postBatchTransferHandler(s))
}

// postBatchTransferHandler runs the transfers sequentially. Once started the response is
// always 200 with one outcome per transfer in request order.
func postBatchTransferHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if s.Transfers.Signer() == nil {
			return httperrors.ErrUnauthenticated
		}

		var body dto.BatchTransferRequest
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		outcomes := s.Transfers.BatchTransfer(ctx, body.ToRequests())

		return util.ValidateAndReturn(c, http.StatusOK, dto.NewBatchTransferResponse(outcomes))
	}
}
