package httperrors

import "net/http"

const (
	TypeGeneric         = "generic"
	TypeBadRequest      = "badRequest"
	TypeUnauthenticated = "Unauthenticated"
	TypeNotConfigured   = "notConfigured"
)

var (
	ErrUnauthenticated         = NewHTTPError(http.StatusUnauthorized, TypeUnauthenticated, "Please sign in first to transfer ETH")
	ErrUnauthenticatedMint     = NewHTTPError(http.StatusUnauthorized, TypeUnauthenticated, "Please sign in first to mint an NFT")
	ErrUnauthenticatedApproval = NewHTTPError(http.StatusUnauthorized, TypeUnauthenticated, "Please sign in first to change NFT approvals")
	ErrNFTNotConfigured        = NewHTTPError(http.StatusNotFound, TypeNotConfigured, "No NFT contract configured.")
	ErrBadRequestBody          = NewHTTPError(http.StatusBadRequest, TypeBadRequest, "Malformed request body.")
	ErrInternalServer          = NewHTTPError(http.StatusInternalServerError, TypeGeneric, http.StatusText(http.StatusInternalServerError))
)
