package httperrors

import (
	"fmt"
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// HTTPError is the JSON body of every non-2xx response.
type HTTPError struct {
	Code     int    `json:"status"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	Internal error  `json:"-"`
}

func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		Code:  code,
		Type:  errorType,
		Title: title,
	}
}

func NewHTTPErrorWithDetail(code int, errorType string, title string, detail string) *HTTPError {
	return &HTTPError{
		Code:   code,
		Type:   errorType,
		Title:  title,
		Detail: detail,
	}
}

func NewFromEcho(e *echo.HTTPError) *HTTPError {
	return &HTTPError{
		Code:  e.Code,
		Type:  TypeGeneric,
		Title: http.StatusText(e.Code),
	}
}

func (e *HTTPError) Error() string {
	var msg string
	if len(e.Detail) > 0 {
		msg = fmt.Sprintf("HTTPError %d (%s): %s - %s", e.Code, e.Type, e.Title, e.Detail)
	} else {
		msg = fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
	}
	if e.Internal != nil {
		msg = fmt.Sprintf("%s, %v", msg, e.Internal)
	}

	return msg
}

func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// Validate validates this HTTP error body
func (e *HTTPError) Validate(_ strfmt.Registry) error {
	if err := validate.MinimumInt("status", "body", int64(e.Code), http.StatusBadRequest, false); err != nil {
		return err
	}

	if err := validate.RequiredString("type", "body", e.Type); err != nil {
		return err
	}

	if err := validate.RequiredString("title", "body", e.Title); err != nil {
		return err
	}

	return nil
}

// HTTPErrorHandler renders every error returned by a handler as an HTTPError body.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
	case errors.As(err, &echoErr):
		httpErr = NewFromEcho(echoErr)
		if msg, ok := echoErr.Message.(string); ok && msg != http.StatusText(echoErr.Code) {
			httpErr.Detail = msg
		}
	default:
		log.Ctx(c.Request().Context()).Error().Err(err).Msg("Unhandled error in handler")
		httpErr = NewHTTPError(http.StatusInternalServerError, TypeGeneric, http.StatusText(http.StatusInternalServerError))
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.Code)
	} else {
		writeErr = c.JSON(httpErr.Code, httpErr)
	}
	if writeErr != nil {
		log.Ctx(c.Request().Context()).Error().Err(writeErr).Msg("Failed to write error response")
	}
}
