package transfers

import (
	"net/http"

	"github.com/pkg/errors"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/transfer"
)

// queryError maps a failed balance or estimate query to an HTTP error.
func queryError(err error) error {
	if errors.Is(err, transfer.ErrCapabilityUnavailable) {
		return httperrors.ErrUnauthenticated
	}

	classified := transfer.Classify(err)
	switch classified.Kind {
	case transfer.KindInvalidAddress, transfer.KindInvalidAmount, transfer.KindInsufficientFunds:
		return &httperrors.HTTPError{
			Code:     http.StatusBadRequest,
			Type:     string(classified.Kind),
			Title:    classified.Message,
			Internal: err,
		}
	case transfer.KindUnauthenticated:
		return httperrors.ErrUnauthenticated
	case transfer.KindUnderpriced, transfer.KindNonceConflict, transfer.KindProviderError:
	}

	return &httperrors.HTTPError{
		Code:     http.StatusBadGateway,
		Type:     string(classified.Kind),
		Title:    classified.Message,
		Internal: err,
	}
}
