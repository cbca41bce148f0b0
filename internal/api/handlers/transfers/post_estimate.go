package transfers

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util"
)

func PostEstimateRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transfers.POST("/estimate", postEstimateHandler(s))
}

func postEstimateHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body dto.EstimateRequest
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		estimate, err := s.Transfers.EstimateTotalCost(ctx, swag.StringValue(body.To), swag.StringValue(body.Amount))
		if err != nil {
			log.Debug().Err(err).Msg("Failed to estimate transfer cost")
			return queryError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, dto.NewCostEstimate(estimate))
	}
}
