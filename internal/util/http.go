package util

import (
	"net/http"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
	"github/chapool/magic-wallet/internal/api/httperrors"
)

// BindAndValidateBody binds the JSON request body into v and validates it against the
// default format registry.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	log := LogFromContext(c.Request().Context())

	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		log.Debug().Err(err).Msg("Failed to bind request body")
		return httperrors.ErrBadRequestBody
	}

	if err := v.Validate(strfmt.Default); err != nil {
		log.Debug().Err(err).Msg("Request body validation failed")
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, httperrors.TypeBadRequest, "Invalid request body.", err.Error())
	}

	return nil
}

// BindAndValidateQueryParams binds the query string into v and validates it.
func BindAndValidateQueryParams(c echo.Context, v runtime.Validatable) error {
	log := LogFromContext(c.Request().Context())

	if err := (&echo.DefaultBinder{}).BindQueryParams(c, v); err != nil {
		log.Debug().Err(err).Msg("Failed to bind query params")
		return httperrors.NewHTTPError(http.StatusBadRequest, httperrors.TypeBadRequest, "Invalid query parameters.")
	}

	if err := v.Validate(strfmt.Default); err != nil {
		log.Debug().Err(err).Msg("Query params validation failed")
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, httperrors.TypeBadRequest, "Invalid query parameters.", err.Error())
	}

	return nil
}

// ValidateAndReturn validates v before writing it as the JSON response. A response that
// fails its own validation is a server bug and answers 500.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		LogFromContext(c.Request().Context()).Error().Err(err).Msg("Response validation failed")
		return httperrors.ErrInternalServer
	}

	return c.JSON(code, v)
}
