package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/handlers/common"
	"github/chapool/magic-wallet/internal/api/handlers/nft"
	"github/chapool/magic-wallet/internal/api/handlers/transfers"
	"github/chapool/magic-wallet/internal/api/handlers/wallet"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetMetricsRoute(s),
		common.GetReadyRoute(s),
		nft.GetApprovalRoute(s),
		nft.PostMintRoute(s),
		nft.PutApprovalRoute(s),
		transfers.PostBatchTransferRoute(s),
		transfers.PostEstimateRoute(s),
		transfers.PostTransferRoute(s),
		wallet.GetAddressRoute(s),
		wallet.GetBalanceRoute(s),
	}
}
